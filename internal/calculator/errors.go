package calculator

import "errors"

var (
	// ErrInsufficientData indicates the window is too small for the estimator.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrNumericDomain indicates an input outside the estimator's numeric
	// domain (non-positive log argument, negative radicand).
	ErrNumericDomain = errors.New("numeric domain violation")
)
