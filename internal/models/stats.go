package models

// OverviewMetricsResponse holds system-wide counts for the admin dashboard
type OverviewMetricsResponse struct {
	TotalUsers    int64                `json:"total_users"`
	TotalProjects int64                `json:"total_projects"`
	TotalTasks    int64                `json:"total_tasks"`
	TasksByStatus map[TaskStatus]int64 `json:"tasks_by_status"`
	UsersByRole   map[Role]int64       `json:"users_by_role"`
}
