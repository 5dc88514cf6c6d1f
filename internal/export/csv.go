// Package export renders entity listings as CSV downloads. Every field is
// wrapped in double quotes with embedded quotes doubled, regardless of
// content, so the output stays byte-stable for spreadsheet round-trips.
// encoding/csv only quotes when necessary, hence the hand-rolled writer.
package export

import (
	"strconv"
	"strings"
	"time"

	"recruit-go/internal/storage/models"
)

const dateLayout = "2006-01-02"

// ApplicationHeader is the fixed column order for application exports.
var ApplicationHeader = []string{
	"Application ID", "Name", "Email", "Phone", "Job Title",
	"Status", "Source", "Work Authorization", "Rating", "Applied Date", "Notes",
}

// CandidateHeader is the fixed column order for candidate exports.
var CandidateHeader = []string{
	"Application ID", "Name", "Email", "Phone", "Job Title",
	"Status", "Source", "Work Authorization", "Rating", "Applied Date", "Notes",
}

// ClientHeader is the fixed column order for client exports.
var ClientHeader = []string{
	"Name", "Website", "Status", "Email", "Phone", "City", "State", "Created Date",
}

// VendorHeader is the fixed column order for vendor exports.
var VendorHeader = []string{
	"Name", "Contact Person", "Email", "State", "Zip Code", "Vendor Lead", "Created Date",
}

// Applications renders an application listing as CSV.
func Applications(apps []models.Application) string {
	rows := make([][]string, 0, len(apps))
	for _, a := range apps {
		rows = append(rows, []string{
			a.ApplicationID,
			a.Name,
			a.Email,
			a.Phone,
			a.JobTitle,
			a.Status,
			a.Source,
			a.WorkAuthorization,
			ratingField(a.Rating),
			a.AppliedAt.Format(dateLayout),
			a.Notes,
		})
	}
	return render(ApplicationHeader, rows)
}

// Candidates renders a candidate listing as CSV.
func Candidates(cs []models.CandidateApplication) string {
	rows := make([][]string, 0, len(cs))
	for _, c := range cs {
		rows = append(rows, []string{
			c.ApplicationID,
			c.Name,
			c.Email,
			c.Phone,
			c.JobTitle,
			c.Status,
			c.Source,
			c.WorkAuthorization,
			ratingField(c.Rating),
			c.AppliedAt.Format(dateLayout),
			c.Notes,
		})
	}
	return render(CandidateHeader, rows)
}

// Clients renders a client listing as CSV.
func Clients(cs []models.Client) string {
	rows := make([][]string, 0, len(cs))
	for _, c := range cs {
		rows = append(rows, []string{
			c.Name,
			c.WebsiteURL,
			c.Status,
			c.Email,
			c.Phone,
			c.City,
			c.State,
			c.CreatedAt.Format(dateLayout),
		})
	}
	return render(ClientHeader, rows)
}

// Vendors renders a vendor listing as CSV.
func Vendors(vs []models.Vendor) string {
	rows := make([][]string, 0, len(vs))
	for _, v := range vs {
		rows = append(rows, []string{
			v.Name,
			v.ContactPerson,
			v.Email,
			v.State,
			v.ZipCode,
			v.VendorLead,
			v.CreatedAt.Format(dateLayout),
		})
	}
	return render(VendorHeader, rows)
}

// FileName builds the download file name for an export, e.g.
// applications-2026-03-15.csv
func FileName(entity string, now time.Time) string {
	return entity + "-" + now.Format(dateLayout) + ".csv"
}

func ratingField(rating int) string {
	if rating == 0 {
		return ""
	}
	return strconv.Itoa(rating)
}

func render(header []string, rows [][]string) string {
	var b strings.Builder
	writeRow(&b, header)
	for _, row := range rows {
		writeRow(&b, row)
	}
	return b.String()
}

func writeRow(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}
