package authz

import (
	"context"
	"errors"
	"log/slog"
	"runtime/debug"
	"strings"

	"tally/internal/auth"
	"tally/internal/domain"
	"tally/internal/domain/models"
	"tally/internal/domain/repositories"
	"tally/internal/domain/services"

	"github.com/google/uuid"
)

// Router-level reason codes. Resolver-level codes live in resolver.go.
const (
	ReasonConnection         = "connection"
	ReasonSubscription       = "subscription_passthrough"
	ReasonNoIdentity         = "no_identity"
	ReasonUnknownOperation   = "unknown_operation"
	ReasonMissingChecklistID = "missing_checklist_id"
	ReasonMissingSectionID   = "missing_section_id"
	ReasonMissingItemID      = "missing_item_id"
	ReasonSectionNotFound    = "section_not_found"
	ReasonItemNotFound       = "item_not_found"
	ReasonUnscopedList       = "unscoped_list"
	ReasonSelfScoped         = "self_scoped"
	ReasonPublicScoped       = "public_scoped"
	ReasonTokenScoped        = "token_scoped"
	ReasonOwnerScoped        = "owner_scoped"
	ReasonSelfClaim          = "self_claim"
	ReasonOwnerGrant         = "owner_grant"
	ReasonInvalidShareList   = "invalid_share_list"
	ReasonInvalidShareGet    = "invalid_share_get"
	ReasonInternalError      = "internal_error"
)

// Service routes each named operation to the access check it requires and is
// the one entry point the transport layer calls. Uniform CRUD operations go
// through the declarative policy table; list scoping and share management
// have their own rules in code. Unrecognized operations are denied:
// default-deny, not default-allow, is the safety posture.
type Service struct {
	extractor  auth.IdentityExtractor
	resolver   services.AccessChecker
	checklists repositories.ChecklistRepository
	sections   repositories.SectionRepository
	items      repositories.ItemRepository
	policies   *PolicyTable
	audit      Recorder
	logger     *slog.Logger
}

// NewService creates the authorizer. Fails only when the embedded policy
// table cannot be loaded, which is a build defect rather than a runtime
// condition.
func NewService(
	extractor auth.IdentityExtractor,
	resolver services.AccessChecker,
	checklists repositories.ChecklistRepository,
	sections repositories.SectionRepository,
	items repositories.ItemRepository,
	audit Recorder,
	logger *slog.Logger,
) (*Service, error) {
	policies, err := LoadPolicyTable()
	if err != nil {
		return nil, err
	}

	return &Service{
		extractor:  extractor,
		resolver:   resolver,
		checklists: checklists,
		sections:   sections,
		items:      items,
		policies:   policies,
		audit:      audit,
		logger:     logger,
	}, nil
}

var _ services.Authorizer = (*Service)(nil)

// Authorize evaluates one operation. Any panic during evaluation collapses to
// a deny verdict so the caller's authorization state is never ambiguous, and
// every evaluation emits a REQUEST record followed by exactly one ALLOW or
// DENY record.
func (s *Service) Authorize(ctx context.Context, req *models.AuthorizeRequest) (verdict *models.Verdict) {
	requestID := uuid.NewString()

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic during authorization evaluation",
				"operation", req.OperationName,
				"panic", r,
				"stack", string(debug.Stack()),
			)
			verdict = &models.Verdict{IsAuthorized: false, Reason: ReasonInternalError}
		}
		s.recordOutcome(ctx, requestID, req.OperationName, verdict)
	}()

	s.audit.Record(ctx, Entry{
		RequestID: requestID,
		Stage:     StageRequest,
		Operation: req.OperationName,
	})

	verdict = s.evaluate(ctx, req)
	return verdict
}

func (s *Service) recordOutcome(ctx context.Context, requestID, operation string, verdict *models.Verdict) {
	stage := StageDeny
	if verdict.IsAuthorized {
		stage = StageAllow
	}
	s.audit.Record(ctx, Entry{
		RequestID:   requestID,
		Stage:       stage,
		Operation:   operation,
		CallerID:    verdict.CallerID,
		Reason:      verdict.Reason,
		Role:        verdict.Role,
		ChecklistID: verdict.ChecklistID,
		SectionID:   verdict.SectionID,
		ItemID:      verdict.ItemID,
	})
}

func (s *Service) evaluate(ctx context.Context, req *models.AuthorizeRequest) *models.Verdict {
	callerID, err := s.extractor.ExtractIdentity(req.AuthorizationToken)
	if err != nil {
		s.logger.Warn("denying request with unusable credential",
			"operation", req.OperationName,
			"error", err,
		)
		return &models.Verdict{IsAuthorized: false, Reason: ReasonNoIdentity}
	}

	operation := req.OperationName

	// Connection-time handshake: no field has been chosen yet.
	if operation == "" {
		return s.allow(callerID, ReasonConnection)
	}

	// Subscription payload filtering happens client-side in this design; the
	// authorizer passes the handshake through. The distinct reason keeps the
	// gap visible in the audit log.
	if isSubscription(operation) {
		return s.allow(callerID, ReasonSubscription)
	}

	if policy, ok := s.policies.Lookup(operation); ok {
		return s.authorizeTableOp(ctx, callerID, policy, req.Arguments)
	}

	switch operation {
	case "createChecklist":
		// Any authenticated caller may create checklists.
		return s.allow(callerID, ReasonAuthorized)
	case "listChecklists":
		return s.authorizeListChecklists(callerID, req.Arguments)
	case "listShares":
		return s.authorizeListShares(ctx, callerID, req.Arguments)
	case "getShare":
		return s.authorizeGetShare(callerID, req.Arguments)
	case "createShare":
		return s.authorizeCreateShare(ctx, callerID, req.Arguments)
	case "updateShare", "deleteShare":
		return s.authorizeManageShare(ctx, callerID, req.Arguments)
	}

	return s.deny(callerID, ReasonUnknownOperation)
}

// authorizeTableOp resolves the argument id to a checklist id - directly, or
// through one or two parent lookups - and delegates to the access resolver.
// A missing id denies before any lookup is attempted.
func (s *Service) authorizeTableOp(ctx context.Context, callerID string, policy OperationPolicy, args map[string]any) *models.Verdict {
	verdict := &models.Verdict{CallerID: callerID}
	id := stringArg(args, policy.idPath...)

	switch policy.Entity {
	case EntityChecklist:
		if id == "" {
			verdict.Reason = ReasonMissingChecklistID
			return verdict
		}
		verdict.ChecklistID = id

	case EntitySection:
		if id == "" {
			verdict.Reason = ReasonMissingSectionID
			return verdict
		}
		verdict.SectionID = id
		checklistID, reason := s.resolveSection(ctx, id)
		if reason != "" {
			verdict.Reason = reason
			return verdict
		}
		verdict.ChecklistID = checklistID

	case EntityItem:
		if id == "" {
			verdict.Reason = ReasonMissingItemID
			return verdict
		}
		verdict.ItemID = id
		item, err := s.items.GetByID(ctx, id)
		if err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				s.logger.Error("item lookup failed", "item_id", id, "error", err)
			}
			verdict.Reason = ReasonItemNotFound
			return verdict
		}
		verdict.SectionID = item.SectionID
		checklistID, reason := s.resolveSection(ctx, item.SectionID)
		if reason != "" {
			verdict.Reason = reason
			return verdict
		}
		verdict.ChecklistID = checklistID
	}

	decision := s.resolver.CheckAccess(ctx, verdict.ChecklistID, callerID, policy.Permission)
	verdict.IsAuthorized = decision.Authorized
	verdict.Reason = decision.Reason
	verdict.Role = decision.Role
	return verdict
}

func (s *Service) resolveSection(ctx context.Context, sectionID string) (checklistID, denyReason string) {
	section, err := s.sections.GetByID(ctx, sectionID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("section lookup failed", "section_id", sectionID, "error", err)
		}
		return "", ReasonSectionNotFound
	}
	return section.ChecklistID, ""
}

// authorizeListChecklists allows only listings scoped to the caller's own
// checklists or to public ones. Unscoped listings would enumerate private
// data and are denied.
func (s *Service) authorizeListChecklists(callerID string, args map[string]any) *models.Verdict {
	if author := stringArg(args, "filter", "author", "eq"); author != "" && author == callerID {
		return s.allow(callerID, ReasonSelfScoped)
	}
	if boolArg(args, "filter", "isPublic", "eq") {
		return s.allow(callerID, ReasonPublicScoped)
	}
	return s.deny(callerID, ReasonUnscopedList)
}

// authorizeListShares allows self-scoped listings, token-scoped lookups (a
// token self-scopes the query: only its holder can name it), and authors
// enumerating the shares on their own checklist.
func (s *Service) authorizeListShares(ctx context.Context, callerID string, args map[string]any) *models.Verdict {
	if userID := stringArg(args, "filter", "userId", "eq"); userID != "" && userID == callerID {
		return s.allow(callerID, ReasonSelfScoped)
	}
	if stringArg(args, "filter", "shareToken", "eq") != "" {
		return s.allow(callerID, ReasonTokenScoped)
	}
	if checklistID := stringArg(args, "filter", "checklistId", "eq"); checklistID != "" {
		checklist, err := s.checklists.GetByID(ctx, checklistID)
		if err == nil && checklist.Author == callerID {
			verdict := s.allow(callerID, ReasonOwnerScoped)
			verdict.ChecklistID = checklistID
			return verdict
		}
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("checklist lookup failed for share listing", "checklist_id", checklistID, "error", err)
		}
	}
	return s.deny(callerID, ReasonInvalidShareList)
}

// authorizeGetShare allows fetching only the caller's own share record.
func (s *Service) authorizeGetShare(callerID string, args map[string]any) *models.Verdict {
	verdict := &models.Verdict{CallerID: callerID, ChecklistID: stringArg(args, "checklistId")}
	if userID := stringArg(args, "userId"); userID != "" && userID == callerID {
		verdict.IsAuthorized = true
		verdict.Reason = ReasonSelfScoped
		return verdict
	}
	verdict.Reason = ReasonInvalidShareGet
	return verdict
}

// authorizeCreateShare allows self-service acceptance of an invite (target
// user is the caller) or an author granting access on their own checklist.
func (s *Service) authorizeCreateShare(ctx context.Context, callerID string, args map[string]any) *models.Verdict {
	verdict := &models.Verdict{CallerID: callerID}

	checklistID := stringArg(args, "input", "checklistId")
	if checklistID == "" {
		verdict.Reason = ReasonMissingChecklistID
		return verdict
	}
	verdict.ChecklistID = checklistID

	if target := stringArg(args, "input", "userId"); target != "" && target == callerID {
		verdict.IsAuthorized = true
		verdict.Reason = ReasonSelfClaim
		return verdict
	}

	return s.requireAuthor(ctx, verdict, callerID, checklistID)
}

// authorizeManageShare allows updating or deleting a share only for the
// checklist's author.
func (s *Service) authorizeManageShare(ctx context.Context, callerID string, args map[string]any) *models.Verdict {
	verdict := &models.Verdict{CallerID: callerID}

	checklistID := stringArg(args, "input", "checklistId")
	if checklistID == "" {
		verdict.Reason = ReasonMissingChecklistID
		return verdict
	}
	verdict.ChecklistID = checklistID

	return s.requireAuthor(ctx, verdict, callerID, checklistID)
}

func (s *Service) requireAuthor(ctx context.Context, verdict *models.Verdict, callerID, checklistID string) *models.Verdict {
	checklist, err := s.checklists.GetByID(ctx, checklistID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("checklist lookup failed for share management", "checklist_id", checklistID, "error", err)
			verdict.Reason = ReasonLookupFailed
			return verdict
		}
		verdict.Reason = ReasonNotFound
		return verdict
	}
	if checklist.Author != callerID {
		verdict.Reason = ReasonShareRequiresOwner
		return verdict
	}
	verdict.IsAuthorized = true
	verdict.Reason = ReasonOwnerGrant
	verdict.Role = models.RoleOwner
	return verdict
}

func (s *Service) allow(callerID, reason string) *models.Verdict {
	return &models.Verdict{IsAuthorized: true, CallerID: callerID, Reason: reason}
}

func (s *Service) deny(callerID, reason string) *models.Verdict {
	return &models.Verdict{IsAuthorized: false, CallerID: callerID, Reason: reason}
}

func isSubscription(operation string) bool {
	return strings.HasPrefix(operation, "onCreate") ||
		strings.HasPrefix(operation, "onUpdate") ||
		strings.HasPrefix(operation, "onDelete")
}
