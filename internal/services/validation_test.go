package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type TestStruct struct {
	Name  string `validate:"required,min=2"`
	Email string `validate:"required,email"`
	Age   int    `validate:"required,gte=18"`
}

type ledgerRequest struct {
	Amount   decimal.Decimal `validate:"amount"`
	Transfer decimal.Decimal `validate:"positive_amount"`
	TxHash   string          `validate:"omitempty,tx_hash"`
	Wallet   string          `validate:"omitempty,eth_addr"`
}

const validHash = "0x8f2b6c0e3a1d4e5f60718293a4b5c6d7e8f90112233445566778899aabbccdde"

func TestValidationHelper_ValidateStruct(t *testing.T) {
	vh := NewValidationHelper()

	t.Run("valid struct", func(t *testing.T) {
		valid := TestStruct{
			Name:  "John Doe",
			Email: "john@example.com",
			Age:   25,
		}

		err := vh.ValidateStruct(&valid)
		assert.NoError(t, err)
	})

	t.Run("invalid struct - missing required fields", func(t *testing.T) {
		invalid := TestStruct{
			Name: "J", // Too short
			// Email missing
			Age: 16, // Too young
		}

		err := vh.ValidateStruct(&invalid)
		assert.Error(t, err)

		validationErrors, ok := err.(validator.ValidationErrors)
		assert.True(t, ok)
		assert.Len(t, validationErrors, 3) // Name, Email, Age errors
	})

	t.Run("invalid email format", func(t *testing.T) {
		invalid := TestStruct{
			Name:  "John Doe",
			Email: "invalid-email",
			Age:   25,
		}

		err := vh.ValidateStruct(&invalid)
		assert.Error(t, err)

		validationErrors, ok := err.(validator.ValidationErrors)
		assert.True(t, ok)
		assert.Len(t, validationErrors, 1)
		assert.Equal(t, "Email", validationErrors[0].Field())
		assert.Equal(t, "email", validationErrors[0].Tag())
	})
}

func TestValidationHelper_LedgerTags(t *testing.T) {
	vh := NewValidationHelper()

	t.Run("valid request", func(t *testing.T) {
		req := ledgerRequest{
			Amount:   decimal.Zero,
			Transfer: decimal.NewFromInt(5),
			TxHash:   validHash,
			Wallet:   "0x00000000000000000000000000000000000000aa",
		}
		assert.NoError(t, vh.ValidateStruct(&req))
	})

	t.Run("negative amount and zero transfer", func(t *testing.T) {
		req := ledgerRequest{Amount: decimal.NewFromInt(-1), Transfer: decimal.Zero}

		err := vh.ValidateStruct(&req)
		var fieldErrs validator.ValidationErrors
		assert.True(t, errors.As(err, &fieldErrs))
		assert.Len(t, fieldErrs, 2)
		assert.Equal(t, "amount", fieldErrs[0].Tag())
		assert.Equal(t, "positive_amount", fieldErrs[1].Tag())
	})

	t.Run("malformed hash and wallet", func(t *testing.T) {
		req := ledgerRequest{Transfer: decimal.NewFromInt(1), TxHash: "0x1234", Wallet: "alice"}

		err := vh.ValidateStruct(&req)
		var fieldErrs validator.ValidationErrors
		assert.True(t, errors.As(err, &fieldErrs))
		assert.Len(t, fieldErrs, 2)
	})
}

func TestSendServiceError(t *testing.T) {
	cases := []struct {
		err     error
		code    int
		message string
	}{
		{fmt.Errorf("%w: id=7", ErrEntryNotFound), http.StatusNotFound, "ledger entry not found: id=7"},
		{ErrSelfTransfer, http.StatusBadRequest, ErrSelfTransfer.Error()},
		{fmt.Errorf("%w: dial tcp", ErrChainUnavailable), http.StatusServiceUnavailable, "blockchain unavailable: dial tcp"},
		{storeError("insert ledger entry", errors.New("connection reset")), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		SendServiceError(w, tc.err)

		assert.Equal(t, tc.code, w.Code)
		var response ErrorResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, tc.message, response.Error)
	}
}

func TestSendErrorResponse(t *testing.T) {
	t.Run("error response without validation errors", func(t *testing.T) {
		w := httptest.NewRecorder()

		SendErrorResponse(w, "Something went wrong", http.StatusInternalServerError, nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var response ErrorResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, "Something went wrong", response.Error)
		assert.Nil(t, response.Details)
	})

	t.Run("error response with validation errors", func(t *testing.T) {
		vh := NewValidationHelper()
		invalid := TestStruct{
			Name:  "J",
			Email: "invalid-email",
			Age:   16,
		}

		validationErr := vh.ValidateStruct(&invalid)
		assert.Error(t, validationErr)

		w := httptest.NewRecorder()
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, validationErr)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var response ErrorResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, "Validation failed", response.Error)
		assert.NotNil(t, response.Details)
		assert.Contains(t, response.Details, "Name")
		assert.Contains(t, response.Details, "Email")
		assert.Contains(t, response.Details, "Age")
	})

	t.Run("bad request error", func(t *testing.T) {
		w := httptest.NewRecorder()

		SendErrorResponse(w, "Invalid request", http.StatusBadRequest, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var response ErrorResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, "Invalid request", response.Error)
	})

	t.Run("unauthorized error", func(t *testing.T) {
		w := httptest.NewRecorder()

		SendErrorResponse(w, "Unauthorized access", http.StatusUnauthorized, nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var response ErrorResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, "Unauthorized access", response.Error)
	})
}

func TestNewValidationHelper(t *testing.T) {
	vh := NewValidationHelper()
	assert.NotNil(t, vh)
	assert.NotNil(t, vh.validator)
}
