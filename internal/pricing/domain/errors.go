package domain

import "errors"

var (
	ErrInvalidTalent       = errors.New("invalid_talent")
	ErrInvalidPrice        = errors.New("invalid_price")
	ErrInvalidVersion      = errors.New("invalid_version")
	ErrUnsupportedCurrency = errors.New("unsupported_currency")
	ErrTalentNotFound      = errors.New("talent_not_found")
	ErrPricingNotFound     = errors.New("pricing_not_found")
	ErrPricingExists       = errors.New("pricing_already_exists")
	ErrVersionConflict     = errors.New("version_conflict")
)
