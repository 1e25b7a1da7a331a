package errors

import (
	stderrs "errors"

	"gorm.io/gorm"
)

// FromGorm maps a GORM error to an ErrorCode, falling back to the SQLSTATE mapping
// If err is nil, returns nil
func FromGorm(err error, msg string) error {
	switch {
	case err == nil:
		return nil
	case stderrs.Is(err, gorm.ErrRecordNotFound):
		return Wrap(err, ErrorCodeNotFound, msg)
	case stderrs.Is(err, gorm.ErrDuplicatedKey):
		return Wrap(err, ErrorCodeDuplicateKey, msg)
	case stderrs.Is(err, gorm.ErrForeignKeyViolated), stderrs.Is(err, gorm.ErrCheckConstraintViolated):
		return Wrap(err, ErrorCodeInvalidArgument, msg)
	case stderrs.Is(err, gorm.ErrInvalidData), stderrs.Is(err, gorm.ErrInvalidField):
		return Wrap(err, ErrorCodeInvalidArgument, msg)
	}
	if _, ok := As(err); ok {
		return err
	}
	return FromPostgres(err, msg)
}

// IsNotFound reports whether err is a missing row, whichever layer produced it
func IsNotFound(err error) bool {
	return stderrs.Is(err, gorm.ErrRecordNotFound) || IsCode(err, ErrorCodeNotFound)
}
