package models

import "time"

// Project represents a published portfolio project. CreatorID is set at
// creation and never changes afterwards.
type Project struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatorID   int64     `json:"creator_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Technology is a catalog entry referenced by projects. The catalog is
// seed data and read-only at runtime.
type Technology struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Creator is the project-owner projection embedded in aggregated reads.
type Creator struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	EmailHash string `json:"email_hash,omitempty"`
}

// ProjectWithTechnologies is the nested read model produced by the join
// aggregator: one project plus its de-duplicated technology list.
type ProjectWithTechnologies struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Creator      Creator      `json:"creator"`
	Technologies []Technology `json:"technologies"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
