package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/restaurant-floor/internal/apperr"
)

const uniqueViolation = "23505"

// translate classifies a gorm error for entity. Unknown failures become
// Remote with code "<entity>_<op>_failed".
func translate(entity, op string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := apperr.KindOf(err); ok {
		return err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(entity + "_not_found")
	}

	if isUniqueViolation(err) {
		return apperr.Wrap(apperr.KindConflict, entity+"_duplicate", err)
	}

	return apperr.Remote(entity+"_"+op+"_failed", err)
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
