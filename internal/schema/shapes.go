package schema

import "github.com/arjunvn/shopstack/internal/models"

// Declared shapes for every collection and auth payload.
var (
	Signup        = New(func() any { return new(models.SignupInput) })
	Login         = New(func() any { return new(models.LoginInput) })
	ResetPassword = New(func() any { return new(models.ResetPasswordInput) })
	SetPassword   = New(func() any { return new(models.SetPasswordInput) })

	User        = New(func() any { return new(models.UserInput) })
	Product     = New(func() any { return new(models.ProductInput) })
	Category    = New(func() any { return new(models.CategoryInput) })
	Order       = New(func() any { return new(models.OrderInput) })
	Bill        = New(func() any { return new(models.BillInput) })
	Transaction = New(func() any { return new(models.TransactionInput) })
	Address     = New(func() any { return new(models.AddressInput) })
	CartItem    = New(func() any { return new(models.CartItemInput) })
	Review      = New(func() any { return new(models.ReviewInput) })
)
