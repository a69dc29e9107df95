package domain

import (
	"errors"
	"fmt"
	"strings"
)

// InputError は不正なリクエストを表す。パイプラインは実行されない。
type InputError struct {
	Reason string
	Err    error
}

func NewInputError(reason string, err error) *InputError {
	return &InputError{Reason: reason, Err: err}
}

func (e *InputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid input: %s: %v", e.Reason, e.Err)
	}
	return "invalid input: " + e.Reason
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// OracleError is a transport or availability failure of the reasoning oracle.
type OracleError struct {
	Op  string
	Err error
}

func NewOracleError(op string, err error) *OracleError {
	return &OracleError{Op: op, Err: err}
}

func (e *OracleError) Error() string {
	return fmt.Sprintf("oracle %s failed: %v", e.Op, e.Err)
}

func (e *OracleError) Unwrap() error {
	return e.Err
}

// IsQuota reports whether the underlying failure looks like quota exhaustion.
func (e *OracleError) IsQuota() bool {
	return IsQuotaError(e.Err)
}

// SchemaError means the oracle answered, but not with the required document shape.
type SchemaError struct {
	Reason string
	Err    error
}

func NewSchemaError(reason string, err error) *SchemaError {
	return &SchemaError{Reason: reason, Err: err}
}

func (e *SchemaError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("schema violation: %s: %v", e.Reason, e.Err)
	}
	return "schema violation: " + e.Reason
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// AggregationError はアイテム単位の集約失敗。呼び出し側で null に変換される。
type AggregationError struct {
	Item string
	Err  error
}

func NewAggregationError(item string, err error) *AggregationError {
	return &AggregationError{Item: item, Err: err}
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("aggregation of %q failed: %v", e.Item, e.Err)
}

func (e *AggregationError) Unwrap() error {
	return e.Err
}

// AnalysisError wraps the OracleError or SchemaError raised by the vision stage.
// It is the only pipeline failure that reaches the caller.
type AnalysisError struct {
	Err error
}

func NewAnalysisError(err error) *AnalysisError {
	return &AnalysisError{Err: err}
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("style analysis failed: %v", e.Err)
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// IsQuotaError matches the messages the Google and OpenAI clients use for quota exhaustion.
func IsQuotaError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "quota exceeded") ||
		strings.Contains(errStr, "resourceexhausted") ||
		strings.Contains(errStr, "resource_exhausted") ||
		strings.Contains(errStr, "rate limit")
}

// IsInputError reports whether err is, or wraps, an InputError.
func IsInputError(err error) bool {
	var inputErr *InputError
	return errors.As(err, &inputErr)
}
