package services

import (
	"errors"
	"fmt"
)

// error taxonomy ของทั้งระบบ - controller map เป็น HTTP status
var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ValidationError = field หาย/ผิดรูปแบบ - บอก field ให้ client เลย
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Reason)
}

func invalidField(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// InvalidTransitionError = ขอเปลี่ยน status ที่ไปไม่ถึงจาก state ปัจจุบัน
type InvalidTransitionError struct {
	From string
	To   string
	Role string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition %s -> %s (actor role %s)", e.From, e.To, e.Role)
}

// error จาก DB ที่ไม่ใช่ business error = store มีปัญหา
// business error ของเราปล่อยผ่านตามเดิม
func classify(err error) error {
	if err == nil {
		return nil
	}
	var ve *ValidationError
	var te *InvalidTransitionError
	if errors.As(err, &ve) || errors.As(err, &te) ||
		errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
