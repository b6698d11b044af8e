package planning

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/reqplan/reqplan/pkg/application/dto"
	"github.com/reqplan/reqplan/pkg/domain/entities"
	"github.com/reqplan/reqplan/pkg/domain/repositories"
	"github.com/reqplan/reqplan/pkg/domain/services"
	"github.com/reqplan/reqplan/pkg/infrastructure/events"
)

// Config holds configuration for the proposed-order planner
type Config struct {
	// SupplierCalendarID is the calendar used for procured products. Injected
	// explicitly; there is no lookup by well-known name.
	SupplierCalendarID entities.CalendarID
	// WorkdayHours converts days-to-ship into working time. Defaults to 8.
	WorkdayHours int
	// PlanName tags the requirements created by this run
	PlanName string
}

// ProposedOrderService turns projected shortages into proposed orders and
// persisted requirements. Produced products are backward scheduled through
// their routing; procured products get a single supplier-calendar offset.
type ProposedOrderService struct {
	config    Config
	estimator services.DurationEstimator
	logger    *slog.Logger
	store     events.EventStore
}

// NewProposedOrderService creates a planner with the default duration
// estimator. The event store may be nil when no event trail is wanted.
func NewProposedOrderService(config Config, logger *slog.Logger, store events.EventStore) *ProposedOrderService {
	if config.WorkdayHours <= 0 {
		config.WorkdayHours = 8
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ProposedOrderService{
		config:    config,
		estimator: services.NewStandardEstimator(),
		logger:    logger,
		store:     store,
	}
}

// Plan processes the shortages and returns the proposed orders, the
// requirements created for them, and any typed degradations.
func (s *ProposedOrderService) Plan(
	ctx context.Context,
	shortages []*entities.Shortage,
	products repositories.ProductRepository,
	routings repositories.RoutingRepository,
	calendars repositories.CalendarRepository,
	requirements repositories.RequirementRepository,
) (*dto.PlanningResult, error) {
	result := &dto.PlanningResult{
		Orders:       make([]entities.ProposedOrder, 0, len(shortages)),
		Requirements: make([]entities.Requirement, 0, len(shortages)),
	}
	scheduler := services.NewBackwardScheduler(calendarResolver{repo: calendars}, s.estimator)

	for _, shortage := range shortages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if shortage.RequiredBy.IsZero() {
			return nil, fmt.Errorf("%w: shortage for %s has no required-by date",
				services.ErrInvalidRequest, shortage.ProductID)
		}
		if shortage.Quantity.IsNegative() {
			return nil, fmt.Errorf("%w: shortage for %s has negative quantity %s",
				services.ErrInvalidRequest, shortage.ProductID, shortage.Quantity)
		}

		product, err := products.GetProduct(shortage.ProductID)
		if err != nil {
			return nil, fmt.Errorf("failed to get product %s: %w", shortage.ProductID, err)
		}
		if product.WorkInProcess {
			// No requirements for work-in-process products
			s.logger.Debug("skipping work-in-process product", "product_id", product.ID)
			result.Skipped = append(result.Skipped, product.ID)
			continue
		}

		policy := s.facilityPolicy(products, shortage)
		offset := time.Duration(policy.DaysToShip*s.config.WorkdayHours) * time.Hour

		order, warnings, err := s.propose(product, shortage, policy, offset, routings, calendars, scheduler)
		if err != nil {
			return nil, err
		}
		for _, w := range warnings {
			s.logger.Warn("planning degraded",
				"product_id", w.ProductID, "kind", w.Kind.String(), "detail", w.Detail)
			s.appendEvent(string(w.ProductID), events.PlanningDegradedEvent,
				events.PlanningDegraded{ProductID: w.ProductID, Reason: w.Detail})
		}
		result.Warnings = append(result.Warnings, warnings...)
		result.Orders = append(result.Orders, *order)
		s.appendEvent(string(order.ProductID), events.ProposedOrderPlannedEvent,
			events.ProposedOrderPlanned{Order: *order})

		requirement, err := entities.NewRequirement(order, s.description())
		if err != nil {
			return nil, fmt.Errorf("failed to build requirement for %s: %w", order.ProductID, err)
		}
		if err := requirements.Create(ctx, requirement); err != nil {
			return nil, fmt.Errorf("failed to create requirement for %s: %w", order.ProductID, err)
		}
		result.Requirements = append(result.Requirements, *requirement)
		s.appendEvent(requirement.ID, events.RequirementCreatedEvent,
			events.RequirementCreated{Requirement: *requirement})
	}

	return result, nil
}

// propose builds one proposed order. Routing and calendar failures degrade to
// an unshifted start date with a typed warning; they never fail the run.
func (s *ProposedOrderService) propose(
	product *entities.Product,
	shortage *entities.Shortage,
	policy *entities.ProductFacility,
	offset time.Duration,
	routings repositories.RoutingRepository,
	calendars repositories.CalendarRepository,
	scheduler *services.BackwardScheduler,
) (*entities.ProposedOrder, []dto.Warning, error) {
	var warnings []dto.Warning

	startAt := shortage.RequiredBy
	var stepStarts map[entities.StepID]time.Time
	orderType := entities.Make
	facilityID := shortage.ManufacturingFacilityID
	if facilityID == "" {
		facilityID = shortage.FacilityID
	}

	if product.Method == entities.Manufactured {
		routing, err := s.lookupRouting(product, routings)
		switch {
		case err != nil:
			warnings = append(warnings, dto.Warning{
				Kind:      dto.RoutingUnavailable,
				ProductID: product.ID,
				Detail:    err.Error(),
			})
		default:
			scheduled, err := scheduler.Schedule(services.ScheduleRequest{
				Steps:          routing.Steps,
				CompletionAt:   shortage.RequiredBy,
				Quantity:       shortage.Quantity,
				TrailingOffset: offset,
			})
			if err != nil {
				warnings = append(warnings, dto.Warning{
					Kind:      scheduleWarningKind(err),
					ProductID: product.ID,
					Detail:    err.Error(),
				})
			} else {
				startAt = scheduled.OrderStart
				stepStarts = scheduled.StepStarts
			}
		}
	} else {
		orderType = entities.Buy
		facilityID = shortage.FacilityID
		calendar, err := calendars.GetCalendar(s.config.SupplierCalendarID)
		if err != nil {
			warnings = append(warnings, dto.Warning{
				Kind:      dto.CalendarUnavailable,
				ProductID: product.ID,
				Detail:    fmt.Sprintf("supplier calendar %s: %v", s.config.SupplierCalendarID, err),
			})
		} else {
			start, err := calendar.SubtractWorking(shortage.RequiredBy, offset)
			if err != nil {
				warnings = append(warnings, dto.Warning{
					Kind:      dto.CalendarUnavailable,
					ProductID: product.ID,
					Detail:    err.Error(),
				})
			} else {
				startAt = start
			}
		}
	}

	quantity := services.AdjustToReorder(shortage.Quantity, policy.ReorderQuantity)
	order, err := entities.NewProposedOrder(
		product.ID, facilityID, orderType, quantity, shortage.RequiredBy, startAt, stepStarts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build proposed order for %s: %w", product.ID, err)
	}
	return order, warnings, nil
}

// lookupRouting finds the product's routing, retrying once against the
// variant parent when the product declares one.
func (s *ProposedOrderService) lookupRouting(
	product *entities.Product,
	routings repositories.RoutingRepository,
) (*entities.Routing, error) {
	routing, err := routings.GetRoutingForProduct(product.ID)
	if errors.Is(err, repositories.ErrRoutingNotFound) && product.VariantOfID != "" {
		routing, err = routings.GetRoutingForProduct(product.VariantOfID)
	}
	if err != nil {
		return nil, fmt.Errorf("routing for product %s: %w", product.ID, err)
	}
	return routing, nil
}

// facilityPolicy returns the product's policy at the shortage facility, or a
// neutral zero policy when none is on file.
func (s *ProposedOrderService) facilityPolicy(
	products repositories.ProductRepository,
	shortage *entities.Shortage,
) *entities.ProductFacility {
	policy, err := products.GetProductFacility(shortage.ProductID, shortage.FacilityID)
	if err != nil {
		return &entities.ProductFacility{
			ProductID:  shortage.ProductID,
			FacilityID: shortage.FacilityID,
		}
	}
	return policy
}

func (s *ProposedOrderService) description() string {
	if s.config.PlanName != "" {
		return "MRP_" + s.config.PlanName
	}
	return "Automatically generated by planning"
}

func (s *ProposedOrderService) appendEvent(streamID, eventType string, data interface{}) {
	if s.store == nil {
		return
	}
	if err := s.store.AppendEvent(streamID, events.NewEvent(eventType, streamID, data)); err != nil {
		s.logger.Warn("failed to append planning event", "type", eventType, "error", err)
	}
}

func scheduleWarningKind(err error) dto.WarningKind {
	if errors.Is(err, services.ErrEstimateFailed) {
		return dto.EstimateFailed
	}
	return dto.CalendarUnavailable
}

// calendarResolver adapts a CalendarRepository to the scheduler's resolver
// capability.
type calendarResolver struct {
	repo repositories.CalendarRepository
}

var _ services.CalendarResolver = calendarResolver{}

func (r calendarResolver) Resolve(id entities.CalendarID) (services.WorkingCalendar, error) {
	calendar, err := r.repo.GetCalendar(id)
	if err != nil {
		return nil, err
	}
	return calendar, nil
}
