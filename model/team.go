package model

import (
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Team groups employees under a single owning manager. Deleting a team nulls
// out the team reference on its members; deleting a manager is restricted
// while teams still reference them.
type Team struct {
	bun.BaseModel `bun:"table:teams,alias:tm"`
	ID            uuid.UUID `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name          string    `bun:"name,notnull" json:"nome,omitempty"`
	ManagerID     uuid.UUID `bun:"manager_id,notnull,type:uuid" json:"gerenteId,omitempty"`
	Manager       *User     `bun:"rel:belongs-to,join:manager_id=id" json:"gerente,omitempty"`
}
