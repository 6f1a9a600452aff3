package partner

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/partnergate/onboarding-backend/internal/modules/document"
	"github.com/partnergate/onboarding-backend/internal/modules/onboarding"
)

// Status is the onboarding lifecycle state of a partner.
type Status string

const (
	StatusDraft           Status = "DRAFT"
	StatusSubmitted       Status = "SUBMITTED"
	StatusPendingApproval Status = "PENDING_APPROVAL"
	StatusApproved        Status = "APPROVED"
	StatusRejected        Status = "REJECTED"
)

// ApprovalStatus is the state of the decision record tracking a
// partner's onboarding request.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "PENDING"
	ApprovalApproved ApprovalStatus = "APPROVED"
	ApprovalRejected ApprovalStatus = "REJECTED"
)

// Partner is one onboarding subject. The interface configuration and
// the certificate snapshot are captured verbatim at submission time;
// the snapshot never tracks later edits to the certificate it was
// copied from.
type Partner struct {
	ID                  uuid.UUID                  `json:"id"`
	UserID              uuid.UUID                  `json:"userId"`
	CompanyName         string                     `json:"companyName"`
	ContactName         string                     `json:"contactName"`
	ContactEmail        string                     `json:"contactEmail"`
	ContactPhone        string                     `json:"contactPhone"`
	Address             string                     `json:"address,omitempty"`
	City                string                     `json:"city,omitempty"`
	State               string                     `json:"state,omitempty"`
	ZipCode             string                     `json:"zipCode,omitempty"`
	Country             string                     `json:"country,omitempty"`
	Industry            string                     `json:"industry,omitempty"`
	Website             string                     `json:"website,omitempty"`
	PartnerType         onboarding.PartnerType     `json:"partnerType"`
	Status              Status                     `json:"status"`
	Notes               string                     `json:"notes,omitempty"`
	Interface           onboarding.InterfaceConfig `json:"interface"`
	CertificateSnapshot json.RawMessage            `json:"certificateSnapshot,omitempty"`
	CurrentStep         int                        `json:"currentStep"`
	TotalSteps          int                        `json:"totalSteps"`
	SubmittedAt         *time.Time                 `json:"submittedAt,omitempty"`
	ApprovedAt          *time.Time                 `json:"approvedAt,omitempty"`
	RejectedAt          *time.Time                 `json:"rejectedAt,omitempty"`
	CreatedAt           time.Time                  `json:"createdAt"`
	UpdatedAt           time.Time                  `json:"updatedAt"`
}

// Approval is the decision record for a partner. One is created in
// PENDING state alongside every partner; later decisions update it in
// place rather than creating new rows.
type Approval struct {
	ID         uuid.UUID      `json:"id"`
	PartnerID  uuid.UUID      `json:"partnerId"`
	ApproverID *uuid.UUID     `json:"approverId,omitempty"`
	Status     ApprovalStatus `json:"status"`
	Comments   string         `json:"comments,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

// EnrichedApproval is an approval joined with partner fields and the
// partner's document list, shaped for the admin queue tables.
type EnrichedApproval struct {
	Approval
	CompanyName   string                      `json:"companyName"`
	ContactName   string                      `json:"contactName"`
	ContactEmail  string                      `json:"contactEmail"`
	ContactPhone  string                      `json:"contactPhone"`
	PartnerType   onboarding.PartnerType      `json:"partnerType"`
	PartnerStatus Status                      `json:"partnerStatus"`
	SubmittedAt   *time.Time                  `json:"submittedAt,omitempty"`
	ApprovedAt    *time.Time                  `json:"approvedAt,omitempty"`
	Interface     *onboarding.InterfaceConfig `json:"interfaceConfig,omitempty"`
	Documents     []*document.Document        `json:"documents"`
}

// Stats are the dashboard aggregates, recomputed from the partner and
// approval collections on every request.
type Stats struct {
	TotalPartners      int `json:"totalPartners"`
	PendingApprovals   int `json:"pendingApprovals"`
	ApprovedPartners   int `json:"approvedPartners"`
	CompletedThisMonth int `json:"completedThisMonth"`
}

// SecurityPayload is the wizard's security step: the certificate chosen
// by id plus its metadata, copied as-is into the partner record.
type SecurityPayload struct {
	SelectedCertificateID string          `json:"selectedCertificateId,omitempty"`
	SelectedCertificate   json.RawMessage `json:"selectedCertificate,omitempty"`
}

// ReviewPayload is the wizard's final step.
type ReviewPayload struct {
	AcceptTerms bool `json:"acceptTerms"`
}

// InterfaceConfigPayload is the nested wizard payload submitted with a
// new partner.
type InterfaceConfigPayload struct {
	Security  *SecurityPayload            `json:"security,omitempty"`
	Interface *onboarding.InterfaceConfig `json:"interface,omitempty"`
	Review    *ReviewPayload              `json:"review,omitempty"`
}

// CreatePartnerRequest is the payload for registering a partner: the
// union of all wizard step data in one submission.
type CreatePartnerRequest struct {
	UserID          string                  `json:"userId"`
	CompanyName     string                  `json:"companyName"`
	ContactName     string                  `json:"contactName"`
	ContactEmail    string                  `json:"contactEmail"`
	ContactPhone    string                  `json:"contactPhone"`
	Address         string                  `json:"address,omitempty"`
	City            string                  `json:"city,omitempty"`
	State           string                  `json:"state,omitempty"`
	ZipCode         string                  `json:"zipCode,omitempty"`
	Country         string                  `json:"country,omitempty"`
	Industry        string                  `json:"industry,omitempty"`
	Website         string                  `json:"website,omitempty"`
	PartnerType     string                  `json:"partnerType"`
	Notes           string                  `json:"notes,omitempty"`
	InterfaceConfig *InterfaceConfigPayload `json:"interfaceConfig,omitempty"`
}

// UpdatePartnerRequest carries a partial update covering any subset of
// the partner's insertable fields, the flattened interface columns
// included; nil fields are left untouched.
type UpdatePartnerRequest struct {
	UserID       *string `json:"userId,omitempty"`
	CompanyName  *string `json:"companyName,omitempty"`
	ContactName  *string `json:"contactName,omitempty"`
	ContactEmail *string `json:"contactEmail,omitempty"`
	ContactPhone *string `json:"contactPhone,omitempty"`
	Address      *string `json:"address,omitempty"`
	City         *string `json:"city,omitempty"`
	State        *string `json:"state,omitempty"`
	ZipCode      *string `json:"zipCode,omitempty"`
	Country      *string `json:"country,omitempty"`
	Industry     *string `json:"industry,omitempty"`
	Website      *string `json:"website,omitempty"`
	PartnerType  *string `json:"partnerType,omitempty"`
	Notes        *string `json:"notes,omitempty"`
	Status       *string `json:"status,omitempty"`

	Protocol          *string               `json:"protocol,omitempty"`
	AuthType          *string               `json:"authType,omitempty"`
	Direction         *string               `json:"direction,omitempty"`
	Endpoints         *[]onboarding.Endpoint `json:"endpoints,omitempty"`
	Username          *string               `json:"username,omitempty"`
	Password          *string               `json:"password,omitempty"`
	HTTPHeaderName    *string               `json:"httpHeaderName,omitempty"`
	APIKeyValue       *string               `json:"apiKeyValue,omitempty"`
	IdentityKeyID     *string               `json:"identityKeyId,omitempty"`
	Host              *string               `json:"host,omitempty"`
	Port              *string               `json:"port,omitempty"`
	CharacterEncoding *string               `json:"characterEncoding,omitempty"`
	SourcePath        *string               `json:"sourcePath,omitempty"`
	SupportFormatType *string               `json:"supportFormatType,omitempty"`
	FileNamePattern   *string               `json:"fileNamePattern,omitempty"`
	ArchivalPath      *string               `json:"archivalPath,omitempty"`

	AdditionalSettings  *map[string]string `json:"additionalSettings,omitempty"`
	CertificateSnapshot json.RawMessage    `json:"certificateSnapshot,omitempty"`
	CurrentStep         *int               `json:"currentStep,omitempty"`
	TotalSteps          *int               `json:"totalSteps,omitempty"`
}

// DecisionRequest is the admin's approve/reject call for a partner.
type DecisionRequest struct {
	Status   string `json:"status"`
	Comments string `json:"comments,omitempty"`
}
