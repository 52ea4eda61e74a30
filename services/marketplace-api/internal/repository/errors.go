package repository

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/pkg/apperr"
)

// translate maps driver errors onto apperr kinds; what stays unknown becomes Internal.
func translate(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, mongo.ErrNoDocuments):
		return apperr.Wrap(apperr.NotFound, what+" not found", err)
	case errors.Is(err, gorm.ErrDuplicatedKey), mongo.IsDuplicateKeyError(err):
		return apperr.Wrap(apperr.Conflict, what+" already exists", err)
	}
	return apperr.Wrap(apperr.Internal, what, err)
}

var (
	errStatusChanged  = apperr.E(apperr.Conflict, "booking status changed, reload and try again")
	errPaymentChanged = apperr.E(apperr.Conflict, "booking payment changed, reload and try again")
)

func notFound(what string) error {
	return apperr.E(apperr.NotFound, what+" not found")
}
