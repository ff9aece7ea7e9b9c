// Package testutil provides test helper utilities for recruitdesk tests.
package testutil

import (
	"time"

	"github.com/recruitdesk/recruitdesk/internal/admin"
)

// IntPtr returns a pointer to n.
func IntPtr(n int) *int {
	return &n
}

// StrPtr returns a pointer to s.
func StrPtr(s string) *string {
	return &s
}

// SeedJobs returns the jobs the fake API starts with.
func SeedJobs() []admin.Job {
	created := admin.Timestamp{Time: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
	return []admin.Job{
		{
			ID:                "job_backend",
			Title:             "Backend Engineer",
			Department:        "Engineering",
			Description:       "Build and run the interview platform services.",
			Status:            admin.JobStatusOpen,
			CreatedAt:         created,
			ApplicationsCount: 2,
		},
		{
			ID:                "job_design",
			Title:             "Product Designer",
			Department:        "Design",
			Description:       "Own the candidate-facing experience.",
			Status:            admin.JobStatusOpen,
			CreatedAt:         created,
			ApplicationsCount: 1,
		},
		{
			ID:                "job_support",
			Title:             "Support Specialist",
			Department:        "Operations",
			Description:       "Help candidates through their interviews.",
			Status:            admin.JobStatusClosed,
			CreatedAt:         created,
			ApplicationsCount: 0,
		},
	}
}

// SeedInterviews returns the interviews the fake API starts with.
func SeedInterviews() []admin.Interview {
	date := admin.Timestamp{Time: time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)}
	return []admin.Interview{
		{
			ID:            "int_ada",
			CandidateName: "Ada Park",
			JobID:         "job_backend",
			JobTitle:      "Backend Engineer",
			InterviewDate: date,
			Status:        admin.InterviewPendingReview,
			Transcript:    "AI: Tell me about a system you scaled.\nAda: Our queue workers...",
			Questions: []admin.QA{
				{Q: "Tell me about a system you scaled.", A: "Our queue workers..."},
				{Q: "How do you debug latency?", A: "Start from traces."},
			},
			Summary:     "Strong distributed systems background.",
			Screenshots: []string{"/uploads/screenshots/int_ada_1.png", "uploads/screenshots/int_ada_2.png"},
		},
		{
			ID:            "int_ben",
			CandidateName: "Ben Osei",
			JobID:         "job_backend",
			JobTitle:      "Backend Engineer",
			InterviewDate: date,
			Status:        admin.InterviewScheduled,
		},
		{
			ID:            "int_cleo",
			CandidateName: "Cleo Marsh",
			JobID:         "job_design",
			JobTitle:      "Product Designer",
			InterviewDate: date,
			Status:        admin.InterviewReviewed,
			Score:         IntPtr(72),
			AdminFeedback: StrPtr("Good portfolio."),
		},
	}
}
