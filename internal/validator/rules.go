package validator

import (
	"log"

	"reliefhub_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules installs domain-specific validation tags. Registration
// failure is a startup bug, not a runtime condition.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-severity", validateSeverity)
	mustRegister("is-emergency-type", validateEmergencyType)
}

func validateUserRole(fl validator.FieldLevel) bool {
	switch models.UserRole(fl.Field().String()) {
	case models.UserRoleVolunteer, models.UserRoleNGO:
		return true
	}
	return false
}

func validateSeverity(fl validator.FieldLevel) bool {
	switch models.SeverityLevel(fl.Field().String()) {
	case models.SeverityRed, models.SeverityOrange, models.SeverityYellow:
		return true
	}
	return false
}

func validateEmergencyType(fl validator.FieldLevel) bool {
	switch models.EmergencyType(fl.Field().String()) {
	case models.EmergencyMedical, models.EmergencyTrapped, models.EmergencyEvacuation,
		models.EmergencyFood, models.EmergencyOther:
		return true
	}
	return false
}
