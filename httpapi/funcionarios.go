package httpapi

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/difurigo/avant-api/auth"
	"github.com/difurigo/avant-api/model"
	"github.com/difurigo/avant-api/pagination"
	"github.com/difurigo/avant-api/repository"
)

// CreateEmployeePayload is the employee registration body.
type CreateEmployeePayload struct {
	Name       string `json:"nome"`
	Email      string `json:"email"`
	Password   string `json:"senha"`
	TeamID     string `json:"equipeId"`
	CareerPlan string `json:"planoCarreira"`
}

// Validate will run validation rules
func (r CreateEmployeePayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(4, 100)),
		validation.Field(&r.TeamID, validation.Required, is.UUID),
		validation.Field(&r.CareerPlan, validation.Length(0, 500)),
	)
}

// UpdateCareerPlanPayload carries the replacement career plan.
type UpdateCareerPlanPayload struct {
	CareerPlan string `json:"planoCarreira"`
}

// Validate will run validation rules
func (r UpdateCareerPlanPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CareerPlan, validation.Required, validation.Length(1, 500)),
	)
}

// TeamRef is the embedded team reference in employee views.
type TeamRef struct {
	ID   string `json:"id"`
	Name string `json:"nome"`
}

// EmployeeView is the employee response shape.
type EmployeeView struct {
	ID         string   `json:"id"`
	Name       string   `json:"nome"`
	Email      string   `json:"email"`
	CareerPlan string   `json:"planoCarreira"`
	Team       *TeamRef `json:"equipe"`
}

func employeeView(u *model.User) EmployeeView {
	view := EmployeeView{
		ID:         u.ID.String(),
		Name:       u.Name,
		Email:      u.Email,
		CareerPlan: u.CareerPlan,
	}

	if u.Team != nil {
		view.Team = &TeamRef{
			ID:   u.Team.ID.String(),
			Name: u.Team.Name,
		}
	}

	return view
}

// CreateEmployee handles POST /api/v1/funcionarios. Manager only.
func (s *Server) CreateEmployee(c *fiber.Ctx) error {
	payload := new(CreateEmployeePayload)

	if err := c.BodyParser(payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "failed to parse request body").
			WithCode(errors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	teamID, err := uuid.Parse(payload.TeamID)
	if err != nil {
		return auth.ErrUnknownTeam
	}

	id, err := s.auther.RegisterEmployee(c.Context(), auth.RegisterEmployeeInput{
		Name:       payload.Name,
		Email:      payload.Email,
		Password:   payload.Password,
		TeamID:     teamID,
		CareerPlan: payload.CareerPlan,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id": id.String(),
	})
}

// ListEmployees handles GET /api/v1/funcionarios. The page window and the
// navigation links always reflect the normalized pagina/tamanhoPagina pair,
// not the raw query values.
func (s *Server) ListEmployees(c *fiber.Ctx) error {
	page, size := pagination.Normalize(
		c.QueryInt("pagina", 1),
		c.QueryInt("tamanhoPagina", pagination.DefaultPageSize),
	)

	offset, limit := pagination.Window(page, size)

	records, total, err := s.repos.Users().ListEmployees(c.Context(), offset, limit)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to list employees")
	}

	items := make([]EmployeeView, 0, len(records))
	for _, record := range records {
		items = append(items, employeeView(record))
	}

	baseURL := c.BaseURL() + c.Path()

	return c.JSON(pagination.NewResult(items, baseURL, page, size, total))
}

// GetEmployee handles GET /api/v1/funcionarios/:id.
func (s *Server) GetEmployee(c *fiber.Ctx) error {
	id, err := employeeID(c)
	if err != nil {
		return err
	}

	record, err := s.repos.Users().GetEmployeeByID(c.Context(), id)
	if err != nil {
		if repository.IsNotFound(err) {
			return auth.ErrIdentityNotFound
		}
		return errors.Wrap(err, errors.CategoryInternal, "failed to retrieve employee")
	}

	return c.JSON(employeeView(record))
}

// DeleteEmployee handles DELETE /api/v1/funcionarios/:id.
func (s *Server) DeleteEmployee(c *fiber.Ctx) error {
	id, err := employeeID(c)
	if err != nil {
		return err
	}

	if err := s.repos.Users().DeleteEmployee(c.Context(), id); err != nil {
		if repository.IsNotFound(err) {
			return auth.ErrIdentityNotFound
		}
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete employee")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateCareerPlan handles PUT /api/v1/funcionarios/:id/plano-carreira.
// Employees may only rewrite their own plan.
func (s *Server) UpdateCareerPlan(c *fiber.Ctx) error {
	id, err := employeeID(c)
	if err != nil {
		return err
	}

	if !auth.IsOwner(s.claims(c), id.String()) {
		return auth.ErrAccessDenied
	}

	payload := new(UpdateCareerPlanPayload)

	if err := c.BodyParser(payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "failed to parse request body").
			WithCode(errors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	if err := s.repos.Users().UpdateCareerPlan(c.Context(), id, payload.CareerPlan); err != nil {
		if repository.IsNotFound(err) {
			return auth.ErrIdentityNotFound
		}
		return errors.Wrap(err, errors.CategoryInternal, "failed to update career plan")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// employeeID parses the :id route parameter. A malformed id cannot reference
// any employee, so it maps to not found rather than bad input.
func employeeID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, auth.ErrIdentityNotFound
	}
	return id, nil
}
