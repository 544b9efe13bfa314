// Package export renders the health questionnaire as a printable HTML
// document the user can hand to a doctor.
package export

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"medication-app-server/internal/models"
)

const questionnaireTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Health Questionnaire</title>
<style>
body { font-family: sans-serif; margin: 20px; color: #333; }
h1 { color: #2D6A9F; border-bottom: 2px solid #2D6A9F; padding-bottom: 5px; }
h2 { color: #444; margin-top: 30px; border-bottom: 1px solid #ccc; padding-bottom: 3px; }
ul { list-style-type: disc; padding-left: 20px; }
li { margin-bottom: 5px; }
p { font-size: 14px; color: #666; }
</style>
</head>
<body>
<h1>Health Questionnaire</h1>
<p><b>Patient:</b> {{.PatientName}}</p>
<p><b>Exported:</b> {{.ExportedAt}}</p>
<h2>Chronic Conditions</h2>
<ul>{{range .ChronicConditions}}<li>{{.}}</li>{{else}}<li>No information provided.</li>{{end}}</ul>
<h2>Allergies</h2>
<ul>{{range .Allergies}}<li>{{.}}</li>{{else}}<li>No information provided.</li>{{end}}</ul>
<h2>Previous Surgeries</h2>
<ul>{{range .Surgeries}}<li>{{.}}</li>{{else}}<li>No information provided.</li>{{end}}</ul>
<h2>Family History</h2>
<ul>{{range .FamilyHistory}}<li>{{.}}</li>{{else}}<li>No information provided.</li>{{end}}</ul>
<h2>Additional Notes</h2>
<p>{{if .OtherNotes}}{{.OtherNotes}}{{else}}No information provided.{{end}}</p>
</body>
</html>
`

var questionnaire = template.Must(template.New("questionnaire").Parse(questionnaireTemplate))

type questionnaireData struct {
	PatientName       string
	ExportedAt        string
	ChronicConditions []string
	Allergies         []string
	Surgeries         []string
	FamilyHistory     []string
	OtherNotes        string
}

// Questionnaire renders the anamnesis for the named patient. Blank list
// entries are dropped; empty sections render a placeholder line.
func Questionnaire(anamnesis *models.Anamnesis, patientName string, now time.Time) ([]byte, error) {
	data := questionnaireData{
		PatientName:       patientName,
		ExportedAt:        now.Format("January 2, 2006"),
		ChronicConditions: nonEmpty(anamnesis.ChronicConditions),
		Allergies:         nonEmpty(anamnesis.Allergies),
		Surgeries:         nonEmpty(anamnesis.Surgeries),
		FamilyHistory:     familyHistoryLines(anamnesis.FamilyHistory),
		OtherNotes:        anamnesis.OtherNotes,
	}
	if data.PatientName == "" {
		data.PatientName = "Patient"
	}

	var buf bytes.Buffer
	if err := questionnaire.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render questionnaire: %w", err)
	}
	return buf.Bytes(), nil
}

func nonEmpty(items []string) []string {
	var out []string
	for _, item := range items {
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

func familyHistoryLines(fh models.FamilyHistory) []string {
	var out []string
	if fh.Hypertension {
		out = append(out, "Hypertension")
	}
	if fh.Diabetes {
		out = append(out, "Diabetes")
	}
	if fh.HeartDisease {
		out = append(out, "Heart disease")
	}
	if fh.Cancer {
		out = append(out, "Cancer")
	}
	if fh.Other != "" {
		out = append(out, "Other: "+fh.Other)
	}
	return out
}
