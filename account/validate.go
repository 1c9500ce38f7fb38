package account

import (
	"errors"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// credentials 是创建账户/修改密码的输入。长度按字符计。
type credentials struct {
	Username string `validate:"required"`
	Password string `validate:"min=5,max=14"`
	Confirm  string `validate:"eqfield=Password"`
}

// check 按字段顺序返回第一个不满足的规则对应的领域错误。
func (c *credentials) check() error {
	err := getValidator().Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	switch verrs[0].Field() {
	case "Username":
		return ErrEmptyUsername
	case "Password":
		return ErrPasswordLength
	default:
		return ErrPasswordMismatch
	}
}
