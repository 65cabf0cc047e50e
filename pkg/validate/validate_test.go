package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/storefront/pkg/validate"
)

type productInput struct {
	ProductName string  `form:"product_name" validate:"required,max=10"`
	Price       string  `form:"price"        validate:"required,numeric"`
	Weight      float64 `json:"weight"       validate:"gte=0"`
	Internal    string  `json:"-"            validate:"omitempty,email"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(productInput{ProductName: "Mug", Price: "9.50"})
	assert.False(t, validate.HasErrors(errs), "%v", errs)
}

func TestMessages(t *testing.T) {
	cases := []struct {
		name  string
		in    productInput
		field string
		msg   string
	}{
		{"required", productInput{Price: "1"}, "product_name", "The product name field is required."},
		{"max", productInput{ProductName: "a very long name", Price: "1"}, "product_name", "The product name may not be greater than 10."},
		{"numeric", productInput{ProductName: "Mug", Price: "abc"}, "price", "The price must be a number."},
		{"gte", productInput{ProductName: "Mug", Price: "1", Weight: -1}, "weight", "The weight must be at least 0."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := validate.Struct(tc.in)
			assert.Equal(t, tc.msg, errs[tc.field])
		})
	}
}

func TestMessagesAreSortedByField(t *testing.T) {
	errs := validate.Struct(productInput{})
	assert.Equal(t, []string{
		"The price field is required.",
		"The product name field is required.",
	}, validate.Messages(errs))
}

func TestFailed(t *testing.T) {
	assert.True(t, validate.Failed(productInput{Price: "1"}, "required"))
	assert.False(t, validate.Failed(productInput{ProductName: "Mug", Price: "x"}, "required"))
}
