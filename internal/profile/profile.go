// Package profile holds the structured profile record that is the single
// source of truth for facts about the person: the vector index, the prompt
// persona and the fact corrector are all derived from it.
package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

type Experience struct {
	Company     string `json:"company"`
	Role        string `json:"role"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

type Project struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tech        []string `json:"tech"`
	Highlights  []string `json:"highlights,omitempty"`
}

type Education struct {
	Degree     string `json:"degree"`
	University string `json:"university"`
	Year       string `json:"year"`
}

// Record is the structured profile. KnownConfusions lists employer names a
// model tends to hallucinate as the current company; the corrector rewrites
// those, never names that actually appear in the work history.
type Record struct {
	Name            string              `json:"name"`
	ShortName       string              `json:"short_name"`
	CurrentRole     string              `json:"current_role"`
	CurrentCompany  string              `json:"current_company"`
	KnownConfusions []string            `json:"known_confusions,omitempty"`
	Experience      []Experience        `json:"experience"`
	Projects        []Project           `json:"projects"`
	Skills          map[string][]string `json:"skills"`
	Education       []Education         `json:"education"`
}

// Load reads a profile record from a JSON file. A missing or unreadable
// file yields the built-in default record; loading never fails.
func Load(path string) *Record {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default()
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil || rec.Name == "" {
		return Default()
	}
	if rec.ShortName == "" {
		rec.ShortName = rec.Name
	}
	return &rec
}

// Default returns the built-in profile record.
func Default() *Record {
	return &Record{
		Name:            "Sayed Abdul Karim",
		ShortName:       "Sarim",
		CurrentRole:     "Senior Software Engineer",
		CurrentCompany:  "Mira",
		KnownConfusions: []string{"Google", "Microsoft", "Amazon"},
		Experience: []Experience{
			{
				Company:     "Mira",
				Role:        "Senior Software Engineer",
				Duration:    "2023 - Present",
				Description: "Leading development of scalable applications and mentoring junior developers",
			},
			{
				Company:     "Spaient",
				Role:        "Full-stack Developer",
				Duration:    "2021 - 2023",
				Description: "Developed multiple web applications using React and Node.js",
			},
		},
		Projects: []Project{
			{
				Name:        "PennyWise",
				Description: "A comprehensive expense tracking application with budget management",
				Tech:        []string{"React", "Node.js", "MongoDB", "Chart.js"},
				Highlights:  []string{"Real-time expense tracking", "Budget alerts", "Data visualization"},
			},
		},
		Skills: map[string][]string{
			"languages": {"JavaScript", "TypeScript", "Python", "Java"},
			"frontend":  {"React", "Next.js", "Redux", "Tailwind CSS"},
			"backend":   {"Node.js", "Express", "FastAPI", "Django"},
			"databases": {"MongoDB", "PostgreSQL", "Redis"},
			"cloud":     {"AWS", "GCP", "Vercel", "Railway"},
		},
		Education: []Education{
			{
				Degree:     "Bachelor of Technology in Computer Science",
				University: "Biju Patnaik University of Technology",
				Year:       "2021",
			},
		},
	}
}

// Chunks converts the record into one descriptive sentence per fact, so
// every structured fact is retrievable as a whole, un-splittable unit.
func (r *Record) Chunks() []string {
	var chunks []string

	chunks = append(chunks, fmt.Sprintf(
		"I am %s, currently working as %s at %s", r.Name, r.CurrentRole, r.CurrentCompany))

	for _, exp := range r.Experience {
		chunks = append(chunks, fmt.Sprintf(
			"Work experience: %s at %s from %s. %s",
			exp.Role, exp.Company, exp.Duration, exp.Description))
	}

	for _, proj := range r.Projects {
		c := fmt.Sprintf("Project: %s - %s. Built with %s.",
			proj.Name, proj.Description, strings.Join(proj.Tech, ", "))
		if len(proj.Highlights) > 0 {
			c += fmt.Sprintf(" Key features: %s", strings.Join(proj.Highlights, ", "))
		}
		chunks = append(chunks, c)
	}

	categories := make([]string, 0, len(r.Skills))
	for cat := range r.Skills {
		categories = append(categories, cat)
	}
	sort.Strings(categories)
	for _, cat := range categories {
		chunks = append(chunks, fmt.Sprintf(
			"My %s skills include: %s", cat, strings.Join(r.Skills[cat], ", ")))
	}

	for _, edu := range r.Education {
		chunks = append(chunks, fmt.Sprintf(
			"Education: %s from %s in %s", edu.Degree, edu.University, edu.Year))
	}

	return chunks
}

// FallbackText is the canonical resume text used when PDF extraction fails.
func (r *Record) FallbackText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n%s at %s\n\n", r.Name, r.ShortName, r.CurrentRole, r.CurrentCompany)

	b.WriteString("EXPERIENCE:\n")
	for _, exp := range r.Experience {
		fmt.Fprintf(&b, "- %s at %s (%s). %s\n", exp.Role, exp.Company, exp.Duration, exp.Description)
	}

	b.WriteString("\nPROJECTS:\n")
	for _, proj := range r.Projects {
		fmt.Fprintf(&b, "- %s: %s. Technologies: %s\n", proj.Name, proj.Description, strings.Join(proj.Tech, ", "))
	}

	b.WriteString("\nSKILLS:\n")
	categories := make([]string, 0, len(r.Skills))
	for cat := range r.Skills {
		categories = append(categories, cat)
	}
	sort.Strings(categories)
	for _, cat := range categories {
		fmt.Fprintf(&b, "- %s: %s\n", cat, strings.Join(r.Skills[cat], ", "))
	}

	b.WriteString("\nEDUCATION:\n")
	for _, edu := range r.Education {
		fmt.Fprintf(&b, "- %s, %s (%s)\n", edu.Degree, edu.University, edu.Year)
	}
	return b.String()
}
