// Package seed carga datos de demostración (categorías, artículos y usuarios) desde YAML.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// File estructura del YAML de semillas.
type File struct {
	Categories []Category `yaml:"categories"`
	Items      []Item     `yaml:"items"`
	Users      []User     `yaml:"users"`
}

type Category struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
	Color       string `yaml:"color"`
}

// Item referencia la categoría por nombre.
type Item struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Category    string `yaml:"category"`
	Price       string `yaml:"price"`
	Quantity    int64  `yaml:"quantity"`
	MinQuantity int64  `yaml:"min_quantity"`
	Barcode     string `yaml:"barcode"`
	Location    string `yaml:"location"`
	Supplier    string `yaml:"supplier"`
}

type User struct {
	Username   string   `yaml:"username"`
	Name       string   `yaml:"name"`
	Email      string   `yaml:"email"`
	Department string   `yaml:"department"`
	Position   string   `yaml:"position"`
	Password   string   `yaml:"password"`
	Roles      []string `yaml:"roles"`
}

// Parse decodifica el YAML. Campos desconocidos son error.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	return &f, nil
}

type CategoryCreator interface {
	List(ctx context.Context) ([]dto.CategoryResponse, error)
	Create(ctx context.Context, in dto.CategoryRequest) (*dto.CategoryResponse, error)
}

type ItemCreator interface {
	Create(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, error)
}

type UserCreator interface {
	Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error)
}

// Result conteo de registros creados y omitidos (ya existían).
type Result struct {
	Categories int
	Items      int
	Users      int
	Skipped    int
}

// Loader aplica un File a través de los casos de uso, así se respetan las mismas validaciones que la API.
type Loader struct {
	categories CategoryCreator
	items      ItemCreator
	users      UserCreator
	log        *logger.Logger
}

func NewLoader(categories CategoryCreator, items ItemCreator, users UserCreator, log *logger.Logger) *Loader {
	if log == nil {
		log = logger.Nop()
	}
	return &Loader{categories: categories, items: items, users: users, log: log}
}

// Load es idempotente: los duplicados se cuentan como omitidos.
func (l *Loader) Load(ctx context.Context, f *File) (*Result, error) {
	res := &Result{}

	for _, c := range f.Categories {
		_, err := l.categories.Create(ctx, dto.CategoryRequest{
			Name: c.Name, Description: c.Description, Icon: c.Icon, Color: c.Color,
		})
		if skip, err := l.check(res, "categoría", c.Name, err); err != nil {
			return res, err
		} else if !skip {
			res.Categories++
		}
	}

	existing, err := l.categories.List(ctx)
	if err != nil {
		return res, fmt.Errorf("list categories: %w", err)
	}
	byName := make(map[string]string, len(existing))
	for _, c := range existing {
		byName[strings.ToLower(c.Name)] = c.ID
	}

	for _, it := range f.Items {
		var categoryID string
		if it.Category != "" {
			id, ok := byName[strings.ToLower(it.Category)]
			if !ok {
				return res, fmt.Errorf("%w: artículo %q con categoría desconocida %q", domain.ErrInvalidInput, it.Name, it.Category)
			}
			categoryID = id
		}
		price := decimal.Zero
		if it.Price != "" {
			p, err := decimal.NewFromString(it.Price)
			if err != nil {
				return res, fmt.Errorf("%w: precio de %q: %v", domain.ErrInvalidInput, it.Name, err)
			}
			price = p
		}
		qty, minQty := it.Quantity, it.MinQuantity
		_, err := l.items.Create(ctx, dto.CreateItemRequest{
			Name: it.Name, Description: it.Description, CategoryID: categoryID,
			Price: &price, Quantity: &qty, MinQuantity: &minQty,
			Barcode: it.Barcode, Location: it.Location, Supplier: it.Supplier,
		})
		if skip, err := l.check(res, "artículo", it.Name, err); err != nil {
			return res, err
		} else if !skip {
			res.Items++
		}
	}

	for _, u := range f.Users {
		_, err := l.users.Create(ctx, dto.CreateUserRequest{
			Username: u.Username, Name: u.Name, Email: u.Email,
			Department: u.Department, Position: u.Position,
			Password: u.Password, Roles: u.Roles,
		})
		if skip, err := l.check(res, "usuario", u.Username, err); err != nil {
			return res, err
		} else if !skip {
			res.Users++
		}
	}
	return res, nil
}

func (l *Loader) check(res *Result, kind, name string, err error) (bool, error) {
	if err == nil {
		return false, nil
	}
	if errors.Is(err, domain.ErrDuplicate) || errors.Is(err, domain.ErrUsernameTaken) || errors.Is(err, domain.ErrEmailAlreadyExists) {
		l.log.Info().Str("kind", kind).Str("name", name).Msg("ya existe, se omite")
		res.Skipped++
		return true, nil
	}
	return false, fmt.Errorf("%s %q: %w", kind, name, err)
}
