package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPhone(t *testing.T) {
	for _, ok := range []string{"+254712345678", "0712 345 678", "0712-345-678"} {
		assert.True(t, IsPhone(ok), ok)
	}
	for _, bad := range []string{"", "12345", "phone", "+254 7123456789012345"} {
		assert.False(t, IsPhone(bad), bad)
	}
}

func TestIsKCSEGrade(t *testing.T) {
	for _, ok := range []string{"A", "A-", "B+", "c", "D-", "E", "Not Provided"} {
		assert.True(t, IsKCSEGrade(ok), ok)
	}
	for _, bad := range []string{"A+", "E-", "F", "B++", ""} {
		assert.False(t, IsKCSEGrade(bad), bad)
	}
}

func TestRegisterRules(t *testing.T) {
	v := validator.New()
	require.NoError(t, RegisterRules(v))

	type req struct {
		Phone string `json:"phoneNumber" validate:"phone"`
		Grade string `json:"kcseGrade" validate:"omitempty,kcsegrade"`
	}

	assert.NoError(t, v.Struct(req{Phone: "+254712345678", Grade: "C+"}))

	err := v.Struct(req{Phone: "nope"})
	require.Error(t, err)
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "phoneNumber", verrs[0].Field())
}
