package models

import (
	"database/sql/driver"
	"fmt"
)

// --- Role Enum ---
type Role string

const (
	RoleCandidate Role = "CANDIDATE"
	RoleCompany   Role = "COMPANY"
	RoleAdmin     Role = "ADMIN"
)

// Scan implements the sql.Scanner interface for Role
func (r *Role) Scan(value interface{}) error {
	strVal, err := scanString(value, "Role")
	if err != nil {
		return err
	}
	v := Role(strVal)
	switch v {
	case RoleCandidate, RoleCompany, RoleAdmin:
		*r = v
		return nil
	default:
		return fmt.Errorf("invalid Role value: %s", strVal)
	}
}

// Value implements the driver.Valuer interface for Role
func (r Role) Value() (driver.Value, error) {
	return string(r), nil
}

// --- Account State Enum ---
// An anonymized account is the tombstone left by an erasure request.
type AccountState string

const (
	AccountStateActive     AccountState = "ACTIVE"
	AccountStateAnonymized AccountState = "ANONYMIZED"
)

// --- Job Status Enum ---
type JobStatus string

const (
	JobStatusDraft   JobStatus = "DRAFT"
	JobStatusActive  JobStatus = "ACTIVE"
	JobStatusPaused  JobStatus = "PAUSED"
	JobStatusClosed  JobStatus = "CLOSED"
	JobStatusExpired JobStatus = "EXPIRED"
)

// Scan implements the sql.Scanner interface for JobStatus
func (js *JobStatus) Scan(value interface{}) error {
	strVal, err := scanString(value, "JobStatus")
	if err != nil {
		return err
	}
	v := JobStatus(strVal)
	switch v {
	case JobStatusDraft, JobStatusActive, JobStatusPaused, JobStatusClosed, JobStatusExpired:
		*js = v
		return nil
	default:
		return fmt.Errorf("invalid JobStatus value: %s", strVal)
	}
}

// Value implements the driver.Valuer interface for JobStatus
func (js JobStatus) Value() (driver.Value, error) {
	return string(js), nil
}

// CanTransitionTo reports whether a company may move one of its postings
// from js to next. Closed and expired postings are final.
func (js JobStatus) CanTransitionTo(next JobStatus) bool {
	switch js {
	case JobStatusDraft:
		return next == JobStatusActive || next == JobStatusClosed
	case JobStatusActive:
		return next == JobStatusPaused || next == JobStatusClosed
	case JobStatusPaused:
		return next == JobStatusActive || next == JobStatusClosed
	default:
		return false
	}
}

// --- Application Status Enum ---
type ApplicationStatus string

const (
	ApplicationStatusPending     ApplicationStatus = "PENDING"
	ApplicationStatusViewed      ApplicationStatus = "VIEWED"
	ApplicationStatusShortlisted ApplicationStatus = "SHORTLISTED"
	ApplicationStatusInterview   ApplicationStatus = "INTERVIEW"
	ApplicationStatusRejected    ApplicationStatus = "REJECTED"
	ApplicationStatusHired       ApplicationStatus = "HIRED"
)

// applicationRank orders the triage pipeline. REJECTED and HIRED share the
// terminal rank.
var applicationRank = map[ApplicationStatus]int{
	ApplicationStatusPending:     0,
	ApplicationStatusViewed:      1,
	ApplicationStatusShortlisted: 2,
	ApplicationStatusInterview:   3,
	ApplicationStatusRejected:    4,
	ApplicationStatusHired:       4,
}

// ParseApplicationStatus validates a raw status string.
func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	v := ApplicationStatus(s)
	if _, ok := applicationRank[v]; !ok {
		return "", fmt.Errorf("invalid ApplicationStatus value: %s", s)
	}
	return v, nil
}

// IsTerminal reports whether no further transitions are possible.
func (as ApplicationStatus) IsTerminal() bool {
	return as == ApplicationStatusRejected || as == ApplicationStatusHired
}

// CanTransitionTo reports whether next is reachable from as. Setting the
// current status again is allowed and treated as a no-op by callers.
// Otherwise the pipeline only moves forward and terminal states have no exits.
func (as ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	from, ok := applicationRank[as]
	if !ok {
		return false
	}
	to, ok := applicationRank[next]
	if !ok {
		return false
	}
	if as == next {
		return true
	}
	if as.IsTerminal() {
		return false
	}
	return to > from
}

// Scan implements the sql.Scanner interface for ApplicationStatus
func (as *ApplicationStatus) Scan(value interface{}) error {
	strVal, err := scanString(value, "ApplicationStatus")
	if err != nil {
		return err
	}
	v, err := ParseApplicationStatus(strVal)
	if err != nil {
		return err
	}
	*as = v
	return nil
}

// Value implements the driver.Valuer interface for ApplicationStatus
func (as ApplicationStatus) Value() (driver.Value, error) {
	return string(as), nil
}

// --- Job attribute enums ---
type JobLevel string

const (
	JobLevelIntern     JobLevel = "INTERN"
	JobLevelApprentice JobLevel = "APPRENTICE"
	JobLevelJunior     JobLevel = "JUNIOR"
	JobLevelMid        JobLevel = "MID"
	JobLevelSenior     JobLevel = "SENIOR"
)

type Modality string

const (
	ModalityOnsite Modality = "ONSITE"
	ModalityHybrid Modality = "HYBRID"
	ModalityRemote Modality = "REMOTE"
)

type ContractType string

const (
	ContractCLT        ContractType = "CLT"
	ContractPJ         ContractType = "PJ"
	ContractTemporary  ContractType = "TEMPORARY"
	ContractInternship ContractType = "INTERNSHIP"
	ContractApprentice ContractType = "APPRENTICE"
	ContractFreelancer ContractType = "FREELANCER"
)

type Education string

const (
	EducationFundamental        Education = "FUNDAMENTAL"
	EducationMedio              Education = "MEDIO"
	EducationTecnico            Education = "TECNICO"
	EducationSuperiorIncompleto Education = "SUPERIOR_INCOMPLETO"
	EducationSuperior           Education = "SUPERIOR"
	EducationPosGraduacao       Education = "POS_GRADUACAO"
	EducationMestrado           Education = "MESTRADO"
	EducationDoutorado          Education = "DOUTORADO"
)

// --- Plan Type Enum ---
type PlanType string

const (
	PlanFree         PlanType = "FREE"
	PlanBasic        PlanType = "BASIC"
	PlanProfessional PlanType = "PROFESSIONAL"
	PlanPremium      PlanType = "PREMIUM"
)

// UnlimitedJobs is the maxActiveJobs value that disables the quota check.
const UnlimitedJobs = -1

// DefaultMaxActiveJobs applies to companies without a subscription.
const DefaultMaxActiveJobs = 2

// --- Audit actions ---
type AuditAction string

const (
	AuditRegister                AuditAction = "REGISTER"
	AuditLogin                   AuditAction = "LOGIN"
	AuditUpdateProfile           AuditAction = "UPDATE_PROFILE"
	AuditChangePassword          AuditAction = "CHANGE_PASSWORD"
	AuditCreateJob               AuditAction = "CREATE_JOB"
	AuditUpdateJobStatus         AuditAction = "UPDATE_JOB_STATUS"
	AuditApply                   AuditAction = "APPLY"
	AuditCancelApplication       AuditAction = "CANCEL_APPLICATION"
	AuditUpdateApplicationStatus AuditAction = "UPDATE_APPLICATION_STATUS"
	AuditDeleteAccount           AuditAction = "DELETE_ACCOUNT"
	AuditVerifyCompany           AuditAction = "VERIFY_COMPANY"
	AuditChangePlan              AuditAction = "CHANGE_PLAN"
)

func scanString(value interface{}, typeName string) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("failed to scan %s: value is not string or []byte", typeName)
	}
}
