package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/portal/backend/internal/domain/project"
	"github.com/shopspring/decimal"
)

// ApprovalModel is the embedded persistence shape of the shared approval
// state machine.
type ApprovalModel struct {
	Status     string     `gorm:"type:varchar(20)"`
	ApprovedBy *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt *time.Time
	Notes      string `gorm:"type:text"`
}

// ToDomain converts the embedded approval columns to the domain value
func (m *ApprovalModel) ToDomain() project.Approval {
	return project.Approval{
		Status:     project.ApprovalStatus(m.Status),
		ApprovedBy: m.ApprovedBy,
		ApprovedAt: m.ApprovedAt,
		Notes:      m.Notes,
	}
}

// FromDomain populates the embedded approval columns from the domain value
func (m *ApprovalModel) FromDomain(a project.Approval) {
	m.Status = string(a.Status)
	m.ApprovedBy = a.ApprovedBy
	m.ApprovedAt = a.ApprovedAt
	m.Notes = a.Notes
}

// ProjectModel is the persistence model for the Project aggregate.
// ClientID is indexed: client-scoped listings go through it.
type ProjectModel struct {
	AggregateModel
	Name        string           `gorm:"type:varchar(200);not null"`
	Description string           `gorm:"type:text"`
	ClientID    uuid.UUID        `gorm:"type:uuid;not null;index"`
	Status      string           `gorm:"type:varchar(20);not null"`
	CreatedBy   uuid.UUID        `gorm:"type:uuid;not null"`
	Budget      *decimal.Decimal `gorm:"type:numeric(14,2)"`
	StartDate   *time.Time
	EndDate     *time.Time
}

func (ProjectModel) TableName() string {
	return "projects"
}

func (m *ProjectModel) ToDomain() *project.Project {
	return &project.Project{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Description:       m.Description,
		ClientID:          m.ClientID,
		Status:            project.Status(m.Status),
		CreatedBy:         m.CreatedBy,
		Budget:            m.Budget,
		StartDate:         m.StartDate,
		EndDate:           m.EndDate,
	}
}

func (m *ProjectModel) FromDomain(p *project.Project) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Name = p.Name
	m.Description = p.Description
	m.ClientID = p.ClientID
	m.Status = string(p.Status)
	m.CreatedBy = p.CreatedBy
	m.Budget = p.Budget
	m.StartDate = p.StartDate
	m.EndDate = p.EndDate
}

// ProjectModelFromDomain creates a new persistence model from a domain Project
func ProjectModelFromDomain(p *project.Project) *ProjectModel {
	m := &ProjectModel{}
	m.FromDomain(p)
	return m
}

// DocumentModel is the persistence model for the Document aggregate.
type DocumentModel struct {
	AggregateModel
	ProjectID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Title            string    `gorm:"type:varchar(200);not null"`
	Description      string    `gorm:"type:text"`
	Type             string    `gorm:"type:varchar(20);not null"`
	FileKey          string    `gorm:"type:varchar(500);not null"`
	FileName         string    `gorm:"type:varchar(255)"`
	FileSize         int64
	UploadedBy       uuid.UUID     `gorm:"type:uuid;not null"`
	IsVisible        bool          `gorm:"not null;default:false"`
	RequiresApproval bool          `gorm:"not null;default:false"`
	Approval         ApprovalModel `gorm:"embedded;embeddedPrefix:approval_"`
}

func (DocumentModel) TableName() string {
	return "documents"
}

func (m *DocumentModel) ToDomain() *project.Document {
	return &project.Document{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		ProjectID:         m.ProjectID,
		Title:             m.Title,
		Description:       m.Description,
		Type:              project.DocumentType(m.Type),
		FileKey:           m.FileKey,
		FileName:          m.FileName,
		FileSize:          m.FileSize,
		UploadedBy:        m.UploadedBy,
		IsVisible:         m.IsVisible,
		RequiresApproval:  m.RequiresApproval,
		Approval:          m.Approval.ToDomain(),
	}
}

func (m *DocumentModel) FromDomain(d *project.Document) {
	m.FromDomainAggregateRoot(d.BaseAggregateRoot)
	m.ProjectID = d.ProjectID
	m.Title = d.Title
	m.Description = d.Description
	m.Type = string(d.Type)
	m.FileKey = d.FileKey
	m.FileName = d.FileName
	m.FileSize = d.FileSize
	m.UploadedBy = d.UploadedBy
	m.IsVisible = d.IsVisible
	m.RequiresApproval = d.RequiresApproval
	m.Approval.FromDomain(d.Approval)
}

// DocumentModelFromDomain creates a new persistence model from a domain Document
func DocumentModelFromDomain(d *project.Document) *DocumentModel {
	m := &DocumentModel{}
	m.FromDomain(d)
	return m
}

// PhotoModel is the persistence model for the Photo aggregate.
type PhotoModel struct {
	AggregateModel
	ProjectID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Title      string    `gorm:"type:varchar(200);not null"`
	Caption    string    `gorm:"type:text"`
	Category   string    `gorm:"type:varchar(100)"`
	FileKey    string    `gorm:"type:varchar(500);not null"`
	FileName   string    `gorm:"type:varchar(255)"`
	UploadedBy uuid.UUID `gorm:"type:uuid;not null"`
	IsVisible  bool      `gorm:"not null;default:false"`
}

func (PhotoModel) TableName() string {
	return "photos"
}

func (m *PhotoModel) ToDomain() *project.Photo {
	return &project.Photo{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		ProjectID:         m.ProjectID,
		Title:             m.Title,
		Caption:           m.Caption,
		Category:          m.Category,
		FileKey:           m.FileKey,
		FileName:          m.FileName,
		UploadedBy:        m.UploadedBy,
		IsVisible:         m.IsVisible,
	}
}

func (m *PhotoModel) FromDomain(p *project.Photo) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.ProjectID = p.ProjectID
	m.Title = p.Title
	m.Caption = p.Caption
	m.Category = p.Category
	m.FileKey = p.FileKey
	m.FileName = p.FileName
	m.UploadedBy = p.UploadedBy
	m.IsVisible = p.IsVisible
}

// PhotoModelFromDomain creates a new persistence model from a domain Photo
func PhotoModelFromDomain(p *project.Photo) *PhotoModel {
	m := &PhotoModel{}
	m.FromDomain(p)
	return m
}

// NoteModel is the persistence model for the Note aggregate.
type NoteModel struct {
	AggregateModel
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index"`
	Content   string    `gorm:"type:text;not null"`
	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`
	IsVisible bool      `gorm:"not null;default:false"`
	IsPinned  bool      `gorm:"not null;default:false"`
}

func (NoteModel) TableName() string {
	return "notes"
}

func (m *NoteModel) ToDomain() *project.Note {
	return &project.Note{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		ProjectID:         m.ProjectID,
		Content:           m.Content,
		CreatedBy:         m.CreatedBy,
		IsVisible:         m.IsVisible,
		IsPinned:          m.IsPinned,
	}
}

func (m *NoteModel) FromDomain(n *project.Note) {
	m.FromDomainAggregateRoot(n.BaseAggregateRoot)
	m.ProjectID = n.ProjectID
	m.Content = n.Content
	m.CreatedBy = n.CreatedBy
	m.IsVisible = n.IsVisible
	m.IsPinned = n.IsPinned
}

// NoteModelFromDomain creates a new persistence model from a domain Note
func NoteModelFromDomain(n *project.Note) *NoteModel {
	m := &NoteModel{}
	m.FromDomain(n)
	return m
}

// MilestoneModel is the persistence model for the Milestone aggregate.
type MilestoneModel struct {
	AggregateModel
	ProjectID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"type:varchar(200);not null"`
	Description string    `gorm:"type:text"`
	DueDate     *time.Time
	IsCompleted bool `gorm:"not null;default:false"`
	CompletedAt *time.Time
	SortOrder   int `gorm:"not null"`
}

func (MilestoneModel) TableName() string {
	return "milestones"
}

func (m *MilestoneModel) ToDomain() *project.Milestone {
	return &project.Milestone{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		ProjectID:         m.ProjectID,
		Title:             m.Title,
		Description:       m.Description,
		DueDate:           m.DueDate,
		IsCompleted:       m.IsCompleted,
		CompletedAt:       m.CompletedAt,
		SortOrder:         m.SortOrder,
	}
}

func (m *MilestoneModel) FromDomain(ms *project.Milestone) {
	m.FromDomainAggregateRoot(ms.BaseAggregateRoot)
	m.ProjectID = ms.ProjectID
	m.Title = ms.Title
	m.Description = ms.Description
	m.DueDate = ms.DueDate
	m.IsCompleted = ms.IsCompleted
	m.CompletedAt = ms.CompletedAt
	m.SortOrder = ms.SortOrder
}

// MilestoneModelFromDomain creates a new persistence model from a domain Milestone
func MilestoneModelFromDomain(ms *project.Milestone) *MilestoneModel {
	m := &MilestoneModel{}
	m.FromDomain(ms)
	return m
}

// AdditionalWorkModel is the persistence model for the AdditionalWork aggregate.
type AdditionalWorkModel struct {
	AggregateModel
	ProjectID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Title       string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	FileKey     string          `gorm:"type:varchar(500)"`
	FileName    string          `gorm:"type:varchar(255)"`
	CreatedBy   uuid.UUID       `gorm:"type:uuid;not null"`
	Approval    ApprovalModel   `gorm:"embedded;embeddedPrefix:approval_"`
}

func (AdditionalWorkModel) TableName() string {
	return "additional_work"
}

func (m *AdditionalWorkModel) ToDomain() *project.AdditionalWork {
	return &project.AdditionalWork{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		ProjectID:         m.ProjectID,
		Title:             m.Title,
		Description:       m.Description,
		Price:             m.Price,
		FileKey:           m.FileKey,
		FileName:          m.FileName,
		CreatedBy:         m.CreatedBy,
		Approval:          m.Approval.ToDomain(),
	}
}

func (m *AdditionalWorkModel) FromDomain(w *project.AdditionalWork) {
	m.FromDomainAggregateRoot(w.BaseAggregateRoot)
	m.ProjectID = w.ProjectID
	m.Title = w.Title
	m.Description = w.Description
	m.Price = w.Price
	m.FileKey = w.FileKey
	m.FileName = w.FileName
	m.CreatedBy = w.CreatedBy
	m.Approval.FromDomain(w.Approval)
}

// AdditionalWorkModelFromDomain creates a new persistence model from a domain AdditionalWork
func AdditionalWorkModelFromDomain(w *project.AdditionalWork) *AdditionalWorkModel {
	m := &AdditionalWorkModel{}
	m.FromDomain(w)
	return m
}

// ChangeRequestModel is the persistence model for the ChangeRequest aggregate.
type ChangeRequestModel struct {
	AggregateModel
	ProjectID     uuid.UUID        `gorm:"type:uuid;not null;index"`
	Title         string           `gorm:"type:varchar(200);not null"`
	Description   string           `gorm:"type:text;not null"`
	RequestedBy   uuid.UUID        `gorm:"type:uuid;not null"`
	Status        string           `gorm:"type:varchar(20);not null"`
	EstimatedCost *decimal.Decimal `gorm:"type:numeric(14,2)"`
	EstimatedTime string           `gorm:"type:varchar(100)"`
	AdminResponse string           `gorm:"type:text"`
	RespondedBy   *uuid.UUID       `gorm:"type:uuid"`
	RespondedAt   *time.Time
}

func (ChangeRequestModel) TableName() string {
	return "change_requests"
}

func (m *ChangeRequestModel) ToDomain() *project.ChangeRequest {
	return &project.ChangeRequest{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		ProjectID:         m.ProjectID,
		Title:             m.Title,
		Description:       m.Description,
		RequestedBy:       m.RequestedBy,
		Status:            project.ChangeRequestStatus(m.Status),
		EstimatedCost:     m.EstimatedCost,
		EstimatedTime:     m.EstimatedTime,
		AdminResponse:     m.AdminResponse,
		RespondedBy:       m.RespondedBy,
		RespondedAt:       m.RespondedAt,
	}
}

func (m *ChangeRequestModel) FromDomain(c *project.ChangeRequest) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.ProjectID = c.ProjectID
	m.Title = c.Title
	m.Description = c.Description
	m.RequestedBy = c.RequestedBy
	m.Status = string(c.Status)
	m.EstimatedCost = c.EstimatedCost
	m.EstimatedTime = c.EstimatedTime
	m.AdminResponse = c.AdminResponse
	m.RespondedBy = c.RespondedBy
	m.RespondedAt = c.RespondedAt
}

// ChangeRequestModelFromDomain creates a new persistence model from a domain ChangeRequest
func ChangeRequestModelFromDomain(c *project.ChangeRequest) *ChangeRequestModel {
	m := &ChangeRequestModel{}
	m.FromDomain(c)
	return m
}
