package ideas

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/torkelwestby/christmas-rebus/internal/platform/airtable"
	"github.com/torkelwestby/christmas-rebus/internal/platform/cloudinary"
	"github.com/torkelwestby/christmas-rebus/internal/platform/logger"
)

// Service maps validated idea input onto the record store's field-id schema.
// The media client is optional; without it inline uploads are passed to the
// store as data URLs, which the store fetches and rehosts itself.
type Service struct {
	log   *logger.Logger
	store airtable.Client
	media cloudinary.Client
	table string
}

func NewService(log *logger.Logger, store airtable.Client, media cloudinary.Client, table string) *Service {
	return &Service{log: log.With("service", "IdeaService"), store: store, media: media, table: table}
}

// List fetches a page of ideas keyed by field id. max is clamped to at least
// 1; page size never exceeds the store's cap of 100.
func (s *Service) List(ctx context.Context, max int, offset string) (airtable.ListResult, error) {
	if max < 1 {
		max = 100
	}
	pageSize := max
	if pageSize > 100 {
		pageSize = 100
	}
	return s.store.List(ctx, s.table, airtable.ListParams{
		MaxRecords:            max,
		PageSize:              pageSize,
		Offset:                offset,
		ReturnFieldsByFieldID: true,
	})
}

// Create validates the input, stamps the submission date and writes a new
// record.
func (s *Service) Create(ctx context.Context, in IdeaInput) (airtable.Record, error) {
	in.Clean()
	if issues := in.Validate(false); len(issues) > 0 {
		return airtable.Record{}, &ValidationError{Issues: issues}
	}

	fields := s.buildFields(ctx, in)
	fields[fieldDateSubmitted] = time.Now().UTC().Format("2006-01-02")

	record, err := s.store.Create(ctx, s.table, fields, true)
	if err != nil {
		return airtable.Record{}, err
	}
	s.log.Info("idea created", "record_id", record.ID, "field_count", len(fields))
	return record, nil
}

// Update patches only the fields present in the input.
func (s *Service) Update(ctx context.Context, recordID string, in IdeaInput) (airtable.Record, error) {
	in.Clean()
	if issues := in.Validate(true); len(issues) > 0 {
		return airtable.Record{}, &ValidationError{Issues: issues}
	}
	return s.store.Update(ctx, s.table, recordID, s.buildFields(ctx, in), true)
}

// Delete removes an idea. With archive=true the record survives with its
// stage set to the archived sentinel instead.
func (s *Service) Delete(ctx context.Context, recordID string, archive bool) error {
	if archive {
		_, err := s.store.Update(ctx, s.table, recordID, map[string]any{fieldStage: StageArchived}, true)
		return err
	}
	return s.store.Delete(ctx, s.table, recordID)
}

// buildFields maps the provided fields onto opaque column ids. Absent fields
// stay absent so updates remain partial.
func (s *Service) buildFields(ctx context.Context, in IdeaInput) map[string]any {
	fields := map[string]any{}

	setStr := func(id, v string) {
		if v != "" {
			fields[id] = v
		}
	}
	setStr(fieldTitle, in.Title)
	setStr(fieldDescription, in.Description)
	setStr(fieldType, in.Type)
	setStr(fieldStage, in.Stage)
	setStr(fieldSubmitter, in.Submitter)
	setStr(fieldTargetAudience, in.TargetAudience)
	setStr(fieldNeedsProblem, in.NeedsProblem)
	setStr(fieldValueProposition, in.ValueProposition)

	setRating := func(id string, v int) {
		if v != 0 {
			fields[id] = v
		}
	}
	setRating(fieldStrategicFit, in.StrategicFit)
	setRating(fieldConsumerNeed, in.ConsumerNeed)
	setRating(fieldBusinessPotential, in.BusinessPotential)
	setRating(fieldFeasibility, in.Feasibility)
	setRating(fieldLaunchTime, in.LaunchTime)

	if attachments := s.buildAttachments(ctx, in); len(attachments) > 0 {
		fields[fieldImage] = attachments
	}
	return fields
}

func (s *Service) buildAttachments(ctx context.Context, in IdeaInput) []map[string]any {
	var sources []ImageAttachment
	switch {
	case in.ImageBase64 != "" && in.ImageFilename != "":
		sources = []ImageAttachment{{Filename: in.ImageFilename, Data: in.ImageBase64}}
	case len(in.ImagesBase64) > 0:
		sources = in.ImagesBase64
	case len(in.ImageURLs) > 0:
		out := make([]map[string]any, 0, len(in.ImageURLs))
		for i, u := range in.ImageURLs {
			out = append(out, map[string]any{
				"url":      u,
				"filename": fmt.Sprintf("idea-%d-%d.jpg", time.Now().UnixMilli(), i),
			})
		}
		return out
	default:
		return nil
	}

	out := make([]map[string]any, 0, len(sources))
	for _, src := range sources {
		dataURL := src.Data
		if !strings.HasPrefix(dataURL, "data:") {
			dataURL = "data:image/jpeg;base64," + dataURL
		}

		attachmentURL := dataURL
		if s.media != nil {
			upload, err := s.media.UploadImage(ctx, dataURL, src.Filename)
			if err != nil {
				s.log.Warn("image upload failed, passing data url to store", "filename", src.Filename, "error", err)
			} else {
				attachmentURL = upload.SecureURL
			}
		}
		out = append(out, map[string]any{
			"url":      attachmentURL,
			"filename": src.Filename,
		})
	}
	return out
}
