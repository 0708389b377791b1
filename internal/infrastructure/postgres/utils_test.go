package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWhereBuilder(t *testing.T) {
	var w whereBuilder
	assert.Equal(t, "", w.sql())

	w.add("o.type = ?", "incoming")
	w.add("(i.name ILIKE ? OR i.barcode ILIKE ?)", "%x%")
	limit := w.arg(10)

	assert.Equal(t, " WHERE o.type = $1 AND (i.name ILIKE $2 OR i.barcode ILIKE $2)", w.sql())
	assert.Equal(t, "$3", limit)
	assert.Equal(t, []any{"incoming", "%x%", 10}, w.args)
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%tornillo%", likePattern("tornillo"))
	assert.Equal(t, `%50\%\_off%`, likePattern("50%_off"))
}

func TestPgErrorHelpers(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"}
	assert.True(t, isUniqueViolation(unique))
	assert.Equal(t, "users_username_key", constraintName(unique))
	assert.False(t, isForeignKeyViolation(unique))

	assert.True(t, isForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, isInvalidText(&pgconn.PgError{Code: "22P02"}))
	assert.False(t, isInvalidText(errors.New("otro")))
	assert.Equal(t, "", constraintName(errors.New("otro")))
}
