package httpapi

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/difurigo/avant-api/auth"
	"github.com/difurigo/avant-api/model"
	"github.com/difurigo/avant-api/repository"
)

// CreateTeamPayload is the team creation body. The owning manager comes from
// the token, never from the payload.
type CreateTeamPayload struct {
	Name string `json:"nome"`
}

// Validate will run validation rules
func (r CreateTeamPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
	)
}

// TeamView is the team response shape.
type TeamView struct {
	ID        string `json:"id"`
	Name      string `json:"nome"`
	ManagerID string `json:"gerenteId"`
}

func teamView(t *model.Team) TeamView {
	return TeamView{
		ID:        t.ID.String(),
		Name:      t.Name,
		ManagerID: t.ManagerID.String(),
	}
}

// CreateTeam handles POST /api/v1/equipes. The claims subject must resolve to
// a live manager row; a stale token whose manager is gone gets a forbidden.
func (s *Server) CreateTeam(c *fiber.Ctx) error {
	payload := new(CreateTeamPayload)

	if err := c.BodyParser(payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "failed to parse request body").
			WithCode(errors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	managerID, err := uuid.Parse(s.claims(c).Subject())
	if err != nil {
		return auth.ErrAccessDenied
	}

	manager, err := s.repos.Users().GetManagerByID(c.Context(), managerID)
	if err != nil {
		if repository.IsNotFound(err) {
			return auth.ErrAccessDenied
		}
		return errors.Wrap(err, errors.CategoryInternal, "failed to resolve manager")
	}

	team, err := s.repos.Teams().Create(c.Context(), &model.Team{
		Name:      payload.Name,
		ManagerID: manager.ID,
	})
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to create team")
	}

	return c.Status(fiber.StatusCreated).JSON(teamView(team))
}

// GetTeam handles GET /api/v1/equipes/:id.
func (s *Server) GetTeam(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return teamNotFound()
	}

	team, err := s.repos.Teams().GetByID(c.Context(), id)
	if err != nil {
		if repository.IsNotFound(err) {
			return teamNotFound()
		}
		return errors.Wrap(err, errors.CategoryInternal, "failed to retrieve team")
	}

	return c.JSON(teamView(team))
}

func teamNotFound() error {
	return errors.New("team not found", errors.CategoryNotFound).
		WithCode(errors.CodeNotFound).
		WithTextCode("TEAM_NOT_FOUND")
}
