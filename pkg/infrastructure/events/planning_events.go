package events

import (
	"github.com/reqplan/reqplan/pkg/domain/entities"
)

const (
	ProposedOrderPlannedEvent = "proposed_order.planned"
	RequirementCreatedEvent   = "requirement.created"
	PlanningDegradedEvent     = "planning.degraded"
)

type ProposedOrderPlanned struct {
	Order entities.ProposedOrder `json:"order"`
}

type RequirementCreated struct {
	Requirement entities.Requirement `json:"requirement"`
}

type PlanningDegraded struct {
	ProductID entities.ProductID `json:"product_id"`
	Reason    string             `json:"reason"`
}
