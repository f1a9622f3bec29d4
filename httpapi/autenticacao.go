package httpapi

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

// RegisterManagerPayload is the manager self-registration body.
type RegisterManagerPayload struct {
	Name     string `json:"nome"`
	Email    string `json:"email"`
	Password string `json:"senha"`
}

// Validate will run validation rules
func (r RegisterManagerPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(4, 100)),
	)
}

// LoginPayload is the credential pair presented at login.
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"senha"`
}

// Validate will run validation rules
func (r LoginPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// RegisterManager handles POST /api/v1/autenticacao/registrar-gerente.
// The route is unauthenticated so a fresh deployment can bootstrap its
// first manager.
func (s *Server) RegisterManager(c *fiber.Ctx) error {
	payload := new(RegisterManagerPayload)

	if err := c.BodyParser(payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "failed to parse request body").
			WithCode(errors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	id, err := s.auther.RegisterManager(c.Context(), payload.Name, payload.Email, payload.Password)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id": id.String(),
	})
}

// Login handles POST /api/v1/autenticacao/login. Unknown email and wrong
// password produce the same response.
func (s *Server) Login(c *fiber.Ctx) error {
	payload := new(LoginPayload)

	if err := c.BodyParser(payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "failed to parse request body").
			WithCode(errors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	result, err := s.auther.Login(c.Context(), payload.Email, payload.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"token":  result.Token,
		"nome":   result.Name,
		"email":  result.Email,
		"perfil": result.Role,
	})
}
