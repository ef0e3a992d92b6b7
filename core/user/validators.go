package user

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/hiendao/smartclass/core"
)

var (
	portalRoleTag  = "portalrole"
	portalRoleText = "invalid role"
)

func init() {
	InitValidators(core.Validate, core.Translator)
}

// InitValidators registers this package's custom validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(portalRoleTag, portalRoleValidation)
	core.RegisterCustomTranslation(validate, translator, portalRoleTag, portalRoleText)
}

// portalRoleValidation checks that the value is a known portal role.
func portalRoleValidation(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	for _, role := range AllRoles {
		if role == val {
			return true
		}
	}
	return false
}
