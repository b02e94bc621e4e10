package docconfig

import "time"

type SectionRequest struct {
	SectionKey string   `json:"sectionKey" binding:"required,max=64"`
	Title      string   `json:"title" binding:"max=120"`
	DataSource string   `json:"dataSource" binding:"required,oneof=earnings employeeDeductions employerContributions all"`
	Mode       string   `json:"mode" binding:"required,oneof=INCLUDE_ALL INCLUDE_SPECIFIC EXCLUDE_SPECIFIC"`
	Components []string `json:"components"`
	Columns    Columns  `json:"columns"`
	ShowTotal  bool     `json:"showTotal"`
	TotalLabel string   `json:"totalLabel" binding:"max=120"`
}

type UpsertConfigRequest struct {
	Name     string           `json:"name" binding:"max=100"`
	Sections []SectionRequest `json:"sections" binding:"required,min=1,dive"`
}

type ConfigResponse struct {
	ID           string    `json:"id,omitempty"`
	DocumentType string    `json:"documentType"`
	Name         string    `json:"name"`
	Version      int       `json:"version"`
	IsActive     bool      `json:"isActive"`
	FromDefault  bool      `json:"fromDefault"`
	Sections     []Section `json:"sections"`
	CreatedBy    string    `json:"createdBy,omitempty"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
}

func ToResponse(c *Config, fromDefault bool) ConfigResponse {
	resp := ConfigResponse{
		DocumentType: c.DocumentType,
		Name:         c.Name,
		Version:      c.Version,
		IsActive:     c.IsActive,
		FromDefault:  fromDefault,
		Sections:     c.SectionList(),
		CreatedBy:    c.CreatedBy,
		CreatedAt:    c.CreatedAt,
	}
	if !fromDefault {
		resp.ID = c.ID.String()
	}
	return resp
}

func (r SectionRequest) toSection() Section {
	return Section{
		SectionKey: r.SectionKey,
		Title:      r.Title,
		DataSource: r.DataSource,
		Mode:       r.Mode,
		Components: r.Components,
		Columns:    r.Columns,
		ShowTotal:  r.ShowTotal,
		TotalLabel: r.TotalLabel,
	}
}
