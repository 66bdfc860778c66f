package store

import (
	"strings"
	"time"

	"github.com/justsurfingit/job-board/internal/models"
)

// DemoJobs returns the sample listings the board ships with, dated relative to now.
func DemoJobs(now time.Time) []models.Job {
	day := 24 * time.Hour
	job := func(id uint, age time.Duration, j models.Job) models.Job {
		j.ID = id
		j.CreatedAt = now.Add(-age)
		j.UpdatedAt = j.CreatedAt
		return j
	}
	reqs := func(r ...string) string { return strings.Join(r, ", ") }

	return []models.Job{
		job(1922330, 2*day, models.Job{
			Title:    "Senior Frontend Developer",
			Company:  "TechCorp Solutions",
			Location: "New York, NY",
			Type:     models.JobTypeFullTime,
			Salary:   "$80,000 - $120,000",
			Description: "We are looking for a skilled Frontend Developer to join our team. You will build user-facing " +
				"web applications, work closely with design on pixel-perfect UIs and mentor junior developers.",
			Requirements:      reqs("React", "TypeScript", "Next.js", "Tailwind CSS", "3+ years experience"),
			Logo:              "https://images.unsplash.com/photo-1560472354-b33ff0c44a43?w=60&h=60&fit=crop&crop=face",
			CategoryName:      "Development",
			FoodAccommodation: models.FoodProvided,
			Gender:            "Male",
		}),
		job(1922331, 1*day, models.Job{
			Title:    "UX/UI Designer",
			Company:  "Creative Studio",
			Location: "San Francisco, CA",
			Type:     models.JobTypeFullTime,
			Salary:   "$70,000 - $100,000",
			Description: "Join our design team to create beautiful and functional user interfaces. You will run user " +
				"research, build wireframes and prototypes, and keep the brand consistent.",
			Requirements:      reqs("Figma", "Adobe Creative Suite", "User Research", "Prototyping", "2+ years experience"),
			Logo:              "https://images.unsplash.com/photo-1494790108755-2616b612b786?w=60&h=60&fit=crop&crop=face",
			CategoryName:      "Design",
			FoodAccommodation: models.FoodNotProvided,
			Gender:            "Female",
		}),
		job(1922332, 3*day, models.Job{
			Title:    "Digital Marketing Manager",
			Company:  "Growth Agency",
			Location: "Chicago, IL",
			Type:     models.JobTypeFullTime,
			Salary:   "$60,000 - $90,000",
			Description: "Lead our digital marketing efforts across multiple channels. Drive growth through strategic " +
				"campaigns, SEO/SEM and performance analysis.",
			Requirements: reqs("Google Analytics", "Social Media", "SEO/SEM", "Email Marketing", "4+ years experience"),
			Logo:         "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=60&h=60&fit=crop&crop=face",
			CategoryName: "Marketing",
		}),
		job(1922333, 7*day, models.Job{
			Title:    "Backend Developer",
			Company:  "DataTech Inc",
			Location: "Austin, TX",
			Type:     models.JobTypeRemote,
			Salary:   "$85,000 - $130,000",
			Description: "Build scalable backend systems and APIs on modern cloud platforms. You will own service " +
				"design, database performance and security.",
			Requirements: reqs("Node.js", "Python", "AWS", "Database Design", "5+ years experience"),
			Logo:         "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=60&h=60&fit=crop&crop=face",
			CategoryName: "Development",
		}),
		job(1922334, 4*day, models.Job{
			Title:    "Product Manager",
			Company:  "InnovateLab",
			Location: "Seattle, WA",
			Type:     models.JobTypeFullTime,
			Salary:   "$90,000 - $140,000",
			Description: "Lead product strategy and development with cross-functional teams. You will define roadmaps, " +
				"prioritise requirements and coordinate launches.",
			Requirements: reqs("Product Strategy", "Agile", "User Research", "Analytics", "3+ years experience"),
			Logo:         "https://images.unsplash.com/photo-1500648767791-00dcc994a43e?w=60&h=60&fit=crop&crop=face",
			CategoryName: "Management",
		}),
		job(1922335, 5*day, models.Job{
			Title:    "DevOps Engineer",
			Company:  "CloudScale",
			Location: "Denver, CO",
			Type:     models.JobTypeContract,
			Salary:   "$95,000 - $135,000",
			Description: "Manage infrastructure and deployment pipelines. You will automate releases, monitor system " +
				"health and run our CI/CD.",
			Requirements: reqs("Docker", "Kubernetes", "AWS", "CI/CD", "4+ years experience"),
			Logo:         "https://images.unsplash.com/photo-1519085360753-af0119f7cbe7?w=60&h=60&fit=crop&crop=face",
			CategoryName: "Development",
		}),
	}
}
