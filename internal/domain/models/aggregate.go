package models

import "time"

// ProjectTechnologyRow is one flat row of the projects ⋈ technologies
// left join. TechnologyID and TechnologyName are nil when the project has
// no associated technologies.
type ProjectTechnologyRow struct {
	ProjectID        int64
	Name             string
	Description      string
	CreatorID        int64
	CreatorName      string
	CreatorEmailHash string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	TechnologyID     *int64
	TechnologyName   *string
}

// AggregateProjects folds a flat joined result set into nested projects.
// Rows are grouped by project id in first-seen order; a technology is
// appended only when the left join produced a non-null child, so a project
// without technologies yields an empty (not nil) list.
func AggregateProjects(rows []ProjectTechnologyRow) []ProjectWithTechnologies {
	projects := make([]ProjectWithTechnologies, 0, len(rows))
	index := make(map[int64]int, len(rows))

	for _, row := range rows {
		i, seen := index[row.ProjectID]
		if !seen {
			i = len(projects)
			index[row.ProjectID] = i
			projects = append(projects, ProjectWithTechnologies{
				ID:          row.ProjectID,
				Name:        row.Name,
				Description: row.Description,
				Creator: Creator{
					ID:        row.CreatorID,
					Name:      row.CreatorName,
					EmailHash: row.CreatorEmailHash,
				},
				Technologies: []Technology{},
				CreatedAt:    row.CreatedAt,
				UpdatedAt:    row.UpdatedAt,
			})
		}

		if row.TechnologyID != nil {
			projects[i].Technologies = append(projects[i].Technologies, Technology{
				ID:   *row.TechnologyID,
				Name: derefString(row.TechnologyName),
			})
		}
	}

	return projects
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
