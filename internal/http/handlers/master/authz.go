package master

import (
	"net/url"
	"strings"

	"github.com/scouttrack/internal/http/response"
	"github.com/scouttrack/internal/logger"
	"github.com/scouttrack/internal/models"
	"github.com/scouttrack/internal/service"

	"github.com/gin-gonic/gin"
)

type authzRolePayload struct {
	Role string `json:"role" binding:"required"`
}

type authzPolicyPayload struct {
	Role   string `json:"role" binding:"required"`
	Object string `json:"object" binding:"required"`
	Action string `json:"action" binding:"required"`
}

type authzSetScoutRolesPayload struct {
	Roles []string `json:"roles"`
}

// GetAuthzMe 現在のスカウトの権限スナップショットを返す
func (h *Handler) GetAuthzMe(c *gin.Context) {
	scoutID, ok := getScoutID(c)
	if !ok {
		return
	}

	roles, err := h.AuthzService.GetScoutRoles(scoutID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_fetch_failed", err)
		return
	}
	policies, err := h.AuthzService.GetScoutPolicies(scoutID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_fetch_failed", err)
		return
	}

	isAdmin := false
	if value, exists := c.Get("scout_is_admin"); exists {
		if flag, typeOK := value.(bool); typeOK {
			isAdmin = flag
		}
	}

	response.Success(c, gin.H{
		"scout_id": scoutID,
		"is_admin": isAdmin,
		"roles":    roles,
		"policies": policies,
	})
}

// ListAuthzRoles ロール一覧を返す
func (h *Handler) ListAuthzRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_fetch_failed", err)
		return
	}
	response.Success(c, roles)
}

// CreateAuthzRole ロールを作成する
func (h *Handler) CreateAuthzRole(c *gin.Context) {
	var req authzRolePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	role, err := h.AuthzService.EnsureRole(req.Role)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	h.recordAuthzAudit(c, service.AuthzAuditRecordInput{
		OperatorScoutID: currentScoutID(c),
		OperatorEmail:   currentEmail(c),
		Action:          "role_create",
		Role:            role,
		RequestID:       currentRequestID(c),
		Detail: models.JSON{
			"role": role,
		},
	})

	logger.Infow("master_authz_role_created",
		"operator_id", currentScoutID(c),
		"role", role,
	)

	response.Success(c, gin.H{"role": role})
}

// DeleteAuthzRole ロールを削除する
func (h *Handler) DeleteAuthzRole(c *gin.Context) {
	role := decodeRoleParam(c.Param("role"))
	if strings.TrimSpace(role) == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	if err := h.AuthzService.DeleteRole(role); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	h.recordAuthzAudit(c, service.AuthzAuditRecordInput{
		OperatorScoutID: currentScoutID(c),
		OperatorEmail:   currentEmail(c),
		Action:          "role_delete",
		Role:            role,
		RequestID:       currentRequestID(c),
		Detail: models.JSON{
			"role": role,
		},
	})

	logger.Infow("master_authz_role_deleted",
		"operator_id", currentScoutID(c),
		"role", role,
	)

	response.Success(c, nil)
}

// GetAuthzRolePolicies ロールのポリシー一覧を返す
func (h *Handler) GetAuthzRolePolicies(c *gin.Context) {
	role := decodeRoleParam(c.Param("role"))
	if strings.TrimSpace(role) == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	policies, err := h.AuthzService.GetRolePolicies(role)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	response.Success(c, policies)
}

// GrantAuthzPolicy ロールにポリシーを付与する
func (h *Handler) GrantAuthzPolicy(c *gin.Context) {
	var req authzPolicyPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.AuthzService.GrantRolePolicy(req.Role, req.Object, req.Action); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	h.recordAuthzAudit(c, service.AuthzAuditRecordInput{
		OperatorScoutID: currentScoutID(c),
		OperatorEmail:   currentEmail(c),
		Action:          "policy_grant",
		Role:            req.Role,
		Object:          req.Object,
		Method:          req.Action,
		RequestID:       currentRequestID(c),
		Detail: models.JSON{
			"role":   req.Role,
			"object": req.Object,
			"method": strings.ToUpper(strings.TrimSpace(req.Action)),
		},
	})

	logger.Infow("master_authz_policy_granted",
		"operator_id", currentScoutID(c),
		"role", req.Role,
		"object", req.Object,
		"action", req.Action,
	)

	response.Success(c, nil)
}

// RevokeAuthzPolicy ロールからポリシーを剥奪する
func (h *Handler) RevokeAuthzPolicy(c *gin.Context) {
	var req authzPolicyPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.AuthzService.RevokeRolePolicy(req.Role, req.Object, req.Action); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	h.recordAuthzAudit(c, service.AuthzAuditRecordInput{
		OperatorScoutID: currentScoutID(c),
		OperatorEmail:   currentEmail(c),
		Action:          "policy_revoke",
		Role:            req.Role,
		Object:          req.Object,
		Method:          req.Action,
		RequestID:       currentRequestID(c),
		Detail: models.JSON{
			"role":   req.Role,
			"object": req.Object,
			"method": strings.ToUpper(strings.TrimSpace(req.Action)),
		},
	})

	logger.Infow("master_authz_policy_revoked",
		"operator_id", currentScoutID(c),
		"role", req.Role,
		"object", req.Object,
		"action", req.Action,
	)

	response.Success(c, nil)
}

// GetAuthzScoutRoles スカウトのロール一覧を返す
func (h *Handler) GetAuthzScoutRoles(c *gin.Context) {
	scoutID, ok := parseIDParam(c, "error.scout_id_invalid")
	if !ok {
		return
	}
	if _, err := h.ScoutRepo.GetByID(scoutID); err != nil {
		respondError(c, response.CodeInternal, "error.authz_fetch_failed", err)
		return
	}

	roles, err := h.AuthzService.GetScoutRoles(scoutID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_fetch_failed", err)
		return
	}
	response.Success(c, roles)
}

// SetAuthzScoutRoles スカウトのロールを設定する
func (h *Handler) SetAuthzScoutRoles(c *gin.Context) {
	scoutID, ok := parseIDParam(c, "error.scout_id_invalid")
	if !ok {
		return
	}
	scout, err := h.ScoutRepo.GetByID(scoutID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_update_failed", err)
		return
	}
	if scout == nil {
		respondError(c, response.CodeBadRequest, "error.scout_id_invalid", nil)
		return
	}

	var req authzSetScoutRolesPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.AuthzService.SetScoutRoles(scoutID, req.Roles); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	h.recordAuthzAudit(c, service.AuthzAuditRecordInput{
		OperatorScoutID: currentScoutID(c),
		OperatorEmail:   currentEmail(c),
		TargetScoutID:   &scoutID,
		TargetEmail:     scout.Email,
		Action:          "scout_roles_update",
		RequestID:       currentRequestID(c),
		Detail: models.JSON{
			"target_scout_id": scoutID,
			"target_email":    scout.Email,
			"roles":           req.Roles,
		},
	})

	logger.Infow("master_authz_scout_roles_updated",
		"operator_id", currentScoutID(c),
		"target_scout_id", scoutID,
		"roles", req.Roles,
	)

	response.Success(c, nil)
}

func (h *Handler) recordAuthzAudit(c *gin.Context, input service.AuthzAuditRecordInput) {
	if h == nil || h.AuthzAuditService == nil {
		return
	}
	if input.OperatorScoutID == 0 || strings.TrimSpace(input.Action) == "" {
		return
	}
	if err := h.AuthzAuditService.Record(input); err != nil {
		logger.Warnw("master_authz_audit_record_failed",
			"error", err,
			"action", input.Action,
			"operator_id", input.OperatorScoutID,
		)
	}
}

func decodeRoleParam(value string) string {
	decoded, err := url.QueryUnescape(value)
	if err != nil {
		return strings.TrimSpace(value)
	}
	return strings.TrimSpace(decoded)
}
