package web

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/futofind/futofind/internal/client"
	"github.com/futofind/futofind/internal/model"
	"github.com/futofind/futofind/internal/view"
)

type reportPage struct {
	PageData
	Form        view.Form
	ReportType  string
	Heading     string
	Description string
	Categories  []string
}

func (p *reportPage) Lost() bool { return p.ReportType == model.ReportLost }

// reportType normalizes the type parameter; anything but "lost" is a
// found-item report.
func reportType(v string) string {
	if v == model.ReportLost {
		return model.ReportLost
	}
	return model.ReportFound
}

func (s *Server) newReportPage(r *http.Request, typ string, form view.Form) *reportPage {
	p := &reportPage{
		Form:       form,
		ReportType: typ,
		Categories: model.Categories,
	}
	if typ == model.ReportLost {
		p.Heading = "Report a Lost Item"
		p.Description = "Please provide as much detail as possible about the item you've lost."
	} else {
		p.Heading = "Report a Found Item"
		p.Description = "Thank you for helping our community. Please describe the item you found."
	}
	p.PageData = s.page(r, p.Heading)
	return p
}

// ReportPage handles GET /report-item.
func (s *Server) ReportPage(w http.ResponseWriter, r *http.Request) {
	form := view.NewForm()
	form.Values.Set("category", model.Categories[0])
	s.Templates.Render(w, "report.html", s.newReportPage(r, reportType(r.URL.Query().Get("type")), form))
}

// ReportSubmit handles POST /report-item.
func (s *Server) ReportSubmit(w http.ResponseWriter, r *http.Request) {
	parseErr := parseMultipart(w, r)
	typ := reportType(r.FormValue("reportType"))

	form := view.NewForm()
	form.Submit(r.PostForm)

	reject := func(msg string) {
		form.Reject(msg)
		p := s.newReportPage(r, typ, form)
		p.Error = msg
		s.Templates.RenderStatus(w, http.StatusUnprocessableEntity, "report.html", p)
	}

	if parseErr != nil {
		reject(photoMessage(parseErr, "Failed to submit report. Please check the details."))
		return
	}

	image, err := formPhoto(r, "image")
	if err != nil {
		slog.Warn("report photo rejected", "error", err)
		reject(photoMessage(err, "Failed to submit report. Please check the details."))
		return
	}

	in := client.ReportInput{
		ReportType:  typ,
		Title:       strings.TrimSpace(r.PostFormValue("title")),
		Description: strings.TrimSpace(r.PostFormValue("description")),
		Category:    r.PostFormValue("category"),
		Location:    strings.TrimSpace(r.PostFormValue("location")),
		Date:        r.PostFormValue("date"),
		Image:       image,
	}
	item, err := s.API.ReportItem(r.Context(), in)
	if err != nil {
		slog.Warn("item report failed", "title", in.Title, "error", err)
		reject(client.Message(err, "Failed to submit report. Please check the details."))
		return
	}

	user := CurrentSession(r.Context())
	slog.Info("item reported", "user", user.Email, "item", item.ID, "type", typ, "photo", image != nil)
	form.Succeed()
	http.Redirect(w, r, "/dashboard?report=success", http.StatusSeeOther)
}
