package models

import (
	"time"

	"gorm.io/datatypes"
)

// Job statuses. Transitions are free-form; any status may follow any other.
const (
	JobStatusOpen   = "open"
	JobStatusActive = "active"
	JobStatusPaused = "paused"
	JobStatusDraft  = "draft"
	JobStatusClosed = "closed"
	JobStatusOnHold = "on-hold"
)

// Job types.
const (
	JobTypeFullTime       = "full-time"
	JobTypePartTime       = "part-time"
	JobTypeContract       = "contract"
	JobTypeContractToHire = "contract-to-hire"
	JobTypeDirectHire     = "direct-hire"
	JobTypeManagedTeams   = "managed-teams"
	JobTypeRemote         = "remote"
)

// Application statuses.
const (
	ApplicationStatusPending   = "pending"
	ApplicationStatusReviewing = "reviewing"
	ApplicationStatusInterview = "interview"
	ApplicationStatusOffered   = "offered"
	ApplicationStatusHired     = "hired"
	ApplicationStatusRejected  = "rejected"
	ApplicationStatusActive    = "active"
	ApplicationStatusInactive  = "inactive"
)

// Application sources.
const (
	SourceLinkedIn      = "LinkedIn"
	SourceIndeed        = "Indeed"
	SourceWebsite       = "Company Website"
	SourceCareerPortal  = "Career Portal"
	SourceReferral      = "Referral"
	SourceAgency        = "Agency"
	SourceOther         = "Other"
)

// Work authorization values.
const (
	WorkAuthUSCitizen = "US Citizen"
	WorkAuthGreenCard = "Green Card"
	WorkAuthH1B       = "H1-B"
	WorkAuthOPTCPT    = "OPT-CPT"
	WorkAuthTNVisa    = "TN Visa"
	WorkAuthOther     = "Other"
)

// SalaryRange is the advertised salary band on a job posting.
type SalaryRange struct {
	Min      int    `json:"min"`
	Max      int    `json:"max"`
	Currency string `json:"currency"`
}

// Job is a posting managed by HR/admin and surfaced on the careers page.
type Job struct {
	JobID             string                            `gorm:"type:char(36);primaryKey" json:"id"`
	Title             string                            `gorm:"type:varchar(255);not null" json:"title"`
	Department        string                            `gorm:"type:varchar(255)" json:"department"`
	Location          string                            `gorm:"type:varchar(255)" json:"location"`
	State             string                            `gorm:"type:varchar(100)" json:"state,omitempty"`
	Type              string                            `gorm:"type:varchar(50)" json:"type"`
	Description       string                            `gorm:"type:text" json:"description"`
	Requirements      datatypes.JSONSlice[string]       `gorm:"type:json" json:"requirements"`
	Responsibilities  datatypes.JSONSlice[string]       `gorm:"type:json" json:"responsibilities"`
	Salary            datatypes.JSONType[SalaryRange]   `gorm:"type:json" json:"salary"`
	ClientBillRate    string                            `gorm:"type:varchar(50)" json:"clientBillRate,omitempty"`
	PayRate           string                            `gorm:"type:varchar(50)" json:"payRate,omitempty"`
	Status            string                            `gorm:"type:varchar(50);default:'open';index:idx_jobs_status" json:"status"`
	SubmissionDueDate *time.Time                        `gorm:"type:datetime(6)" json:"submissionDueDate,omitempty"`
	PostedByName      string                            `gorm:"type:varchar(255)" json:"postedByName"`
	PostedByEmail     string                            `gorm:"type:varchar(255)" json:"postedByEmail"`
	PostedByRole      string                            `gorm:"type:varchar(50)" json:"postedByRole"`
	ClientID          string                            `gorm:"type:char(36);index:idx_jobs_client_id" json:"clientId,omitempty"`
	ClientName        string                            `gorm:"type:varchar(255)" json:"clientName,omitempty"`
	RecruitmentManagerID    string                      `gorm:"type:char(36)" json:"recruitmentManagerId,omitempty"`
	RecruitmentManagerName  string                      `gorm:"type:varchar(255)" json:"recruitmentManagerName,omitempty"`
	RecruitmentManagerEmail string                      `gorm:"type:varchar(255)" json:"recruitmentManagerEmail,omitempty"`
	AssignedToID      string                            `gorm:"type:char(36)" json:"assignedToId,omitempty"`
	AssignedToName    string                            `gorm:"type:varchar(255)" json:"assignedToName,omitempty"`
	NotifyHROnApplication    bool                       `json:"notifyHROnApplication"`
	NotifyAdminOnApplication bool                       `json:"notifyAdminOnApplication"`
	// Denormalized counter, incremented best-effort when an application
	// references this job. Concurrent submissions can under-count.
	ApplicationsCount int       `gorm:"default:0" json:"applicationsCount"`
	CreatedAt         time.Time `gorm:"type:datetime(6)" json:"createdAt"`
	UpdatedAt         time.Time `gorm:"type:datetime(6);autoUpdateTime" json:"updatedAt"`
}

func (Job) TableName() string {
	return "jobs"
}

// StatusChange is one entry of an application's status history.
type StatusChange struct {
	Status        string    `json:"status"`
	ChangedAt     time.Time `json:"changedAt"`
	ChangedByName string    `json:"changedByName,omitempty"`
	Notes         string    `json:"notes,omitempty"`
}

// Application is a candidate application to a job, or a manually entered
// candidate. StatusHistory is append-only: every status mutation appends an
// entry; entries are never removed or reordered, and Status always equals
// the status of the most recent entry.
type Application struct {
	ApplicationUUID  string                                 `gorm:"type:char(36);primaryKey" json:"id"`
	ApplicationID    string                                 `gorm:"type:varchar(50);index:idx_applications_display_id" json:"applicationId"`
	FirstName        string                                 `gorm:"type:varchar(255)" json:"firstName"`
	LastName         string                                 `gorm:"type:varchar(255)" json:"lastName"`
	Name             string                                 `gorm:"type:varchar(255)" json:"name"`
	Email            string                                 `gorm:"type:varchar(255);not null;index:idx_applications_email" json:"email"`
	Phone            string                                 `gorm:"type:varchar(50)" json:"phone,omitempty"`
	Address          string                                 `gorm:"type:varchar(255)" json:"address,omitempty"`
	City             string                                 `gorm:"type:varchar(100)" json:"city,omitempty"`
	State            string                                 `gorm:"type:varchar(100)" json:"state,omitempty"`
	ZipCode          string                                 `gorm:"type:varchar(20)" json:"zipCode,omitempty"`
	Source           string                                 `gorm:"type:varchar(50)" json:"source"`
	Status           string                                 `gorm:"type:varchar(50);default:'pending';index:idx_applications_status" json:"status"`
	JobID            string                                 `gorm:"type:char(36);index:idx_applications_job_id" json:"jobId,omitempty"`
	// Snapshot of the referenced job's title, refreshed at read time when
	// the job still exists. Not kept in sync on later job renames.
	JobTitle         string                                 `gorm:"type:varchar(255)" json:"jobTitle,omitempty"`
	Ownership        string                                 `gorm:"type:char(36)" json:"ownership,omitempty"`
	OwnershipName    string                                 `gorm:"type:varchar(255)" json:"ownershipName,omitempty"`
	WorkAuthorization string                                `gorm:"type:varchar(50)" json:"workAuthorization,omitempty"`
	// 0 means unrated; valid ratings are 1..5.
	Rating           int                                    `gorm:"default:0" json:"rating"`
	Notes            string                                 `gorm:"type:text" json:"notes"`
	AddToTalentBench bool                                   `json:"addToTalentBench"`
	Skills           datatypes.JSONSlice[string]            `gorm:"type:json" json:"skills"`
	Experience       string                                 `gorm:"type:varchar(100)" json:"experience,omitempty"`
	CoverLetter      string                                 `gorm:"type:text" json:"coverLetter,omitempty"`
	ResumeID         string                                 `gorm:"type:char(36)" json:"resumeId,omitempty"`
	AppliedAt        time.Time                              `gorm:"type:datetime(6);index:idx_applications_applied_at" json:"appliedAt"`
	CreatedAt        time.Time                              `gorm:"type:datetime(6)" json:"createdAt"`
	CreatedBy        string                                 `gorm:"type:char(36)" json:"createdBy"`
	CreatedByName    string                                 `gorm:"type:varchar(255)" json:"createdByName"`
	UpdatedAt        time.Time                              `gorm:"type:datetime(6);autoUpdateTime" json:"updatedAt"`
	StatusHistory    datatypes.JSONSlice[StatusChange]      `gorm:"type:json" json:"statusHistory"`
	// Optimistic concurrency counter. Updates that carry an expected
	// version are rejected with a conflict when it is stale; updates
	// without one remain last-write-wins.
	Version          int                                    `gorm:"default:1" json:"version"`
}

func (Application) TableName() string {
	return "applications"
}

// CandidateApplication statuses (restricted set).
const (
	CandidateStatusActive   = "active"
	CandidateStatusInactive = "inactive"
	CandidateStatusHired    = "hired"
	CandidateStatusRejected = "rejected"
)

// CandidateApplication is the strictly validated application entity used by
// the candidate-management admin flow. Same shape as Application, but phone,
// source and work authorization are mandatory and the status enum is
// restricted. Stored as a distinct collection.
type CandidateApplication struct {
	CandidateUUID    string                            `gorm:"type:char(36);primaryKey" json:"id"`
	ApplicationID    string                            `gorm:"type:varchar(50)" json:"applicationId"`
	FirstName        string                            `gorm:"type:varchar(255)" json:"firstName"`
	LastName         string                            `gorm:"type:varchar(255)" json:"lastName"`
	Name             string                            `gorm:"type:varchar(255)" json:"name"`
	Email            string                            `gorm:"type:varchar(255);not null" json:"email"`
	Phone            string                            `gorm:"type:varchar(50);not null" json:"phone"`
	Address          string                            `gorm:"type:varchar(255)" json:"address,omitempty"`
	City             string                            `gorm:"type:varchar(100)" json:"city,omitempty"`
	State            string                            `gorm:"type:varchar(100)" json:"state,omitempty"`
	ZipCode          string                            `gorm:"type:varchar(20)" json:"zipCode,omitempty"`
	Source           string                            `gorm:"type:varchar(50);not null" json:"source"`
	Status           string                            `gorm:"type:varchar(50);default:'active'" json:"status"`
	JobID            string                            `gorm:"type:char(36)" json:"jobId,omitempty"`
	JobTitle         string                            `gorm:"type:varchar(255)" json:"jobTitle,omitempty"`
	WorkAuthorization string                           `gorm:"type:varchar(50);not null" json:"workAuthorization"`
	Rating           int                               `gorm:"default:0" json:"rating"`
	Notes            string                            `gorm:"type:text" json:"notes"`
	Skills           datatypes.JSONSlice[string]       `gorm:"type:json" json:"skills"`
	Experience       string                            `gorm:"type:varchar(100)" json:"experience,omitempty"`
	ResumeID         string                            `gorm:"type:char(36)" json:"resumeId,omitempty"`
	AppliedAt        time.Time                         `gorm:"type:datetime(6)" json:"appliedAt"`
	CreatedAt        time.Time                         `gorm:"type:datetime(6)" json:"createdAt"`
	CreatedBy        string                            `gorm:"type:char(36)" json:"createdBy"`
	CreatedByName    string                            `gorm:"type:varchar(255)" json:"createdByName"`
	UpdatedAt        time.Time                         `gorm:"type:datetime(6);autoUpdateTime" json:"updatedAt"`
	StatusHistory    datatypes.JSONSlice[StatusChange] `gorm:"type:json" json:"statusHistory"`
}

func (CandidateApplication) TableName() string {
	return "candidate_applications"
}

// Client statuses.
const (
	ClientStatusActive   = "active"
	ClientStatusInactive = "inactive"
)

// Client is a master-data entity referenced by Job.ClientID.
type Client struct {
	ClientID   string    `gorm:"type:char(36);primaryKey" json:"id"`
	Name       string    `gorm:"type:varchar(255);not null" json:"name"`
	WebsiteURL string    `gorm:"type:varchar(512)" json:"websiteUrl"`
	Status     string    `gorm:"type:varchar(50);default:'active'" json:"status"`
	Email      string    `gorm:"type:varchar(255)" json:"email,omitempty"`
	Phone      string    `gorm:"type:varchar(50)" json:"phone,omitempty"`
	Address    string    `gorm:"type:varchar(255)" json:"address,omitempty"`
	City       string    `gorm:"type:varchar(100)" json:"city,omitempty"`
	State      string    `gorm:"type:varchar(100)" json:"state,omitempty"`
	ZipCode    string    `gorm:"type:varchar(20)" json:"zipCode,omitempty"`
	CreatedAt  time.Time `gorm:"type:datetime(6)" json:"createdAt"`
}

func (Client) TableName() string {
	return "clients"
}

// Vendor lead values.
const (
	VendorLeadHR    = "hr"
	VendorLeadAdmin = "admin"
)

// Vendor is a master-data entity with no references from other entities.
type Vendor struct {
	VendorID      string    `gorm:"type:char(36);primaryKey" json:"id"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`
	ContactPerson string    `gorm:"type:varchar(255)" json:"contactPerson,omitempty"`
	Email         string    `gorm:"type:varchar(255)" json:"email,omitempty"`
	State         string    `gorm:"type:varchar(100)" json:"state,omitempty"`
	ZipCode       string    `gorm:"type:varchar(20)" json:"zipCode,omitempty"`
	VendorLead    string    `gorm:"type:varchar(20);default:'hr'" json:"vendorLead"`
	CreatedAt     time.Time `gorm:"type:datetime(6)" json:"createdAt"`
}

func (Vendor) TableName() string {
	return "vendors"
}

// Resume is the metadata record of an uploaded résumé binary. FileKey is an
// opaque object-store key, only resolvable through presigned URL issuance.
type Resume struct {
	ResumeID   string    `gorm:"type:char(36);primaryKey" json:"id"`
	UserID     string    `gorm:"type:char(36);index:idx_resumes_user_id" json:"userId"`
	FileName   string    `gorm:"type:varchar(255)" json:"fileName"`
	FileKey    string    `gorm:"type:varchar(1024)" json:"-"`
	FileSize   int64     `json:"fileSize"`
	FileType   string    `gorm:"type:varchar(100)" json:"fileType"`
	UploadedAt time.Time `gorm:"type:datetime(6)" json:"uploadedAt"`
}

func (Resume) TableName() string {
	return "resumes"
}
