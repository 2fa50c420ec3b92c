package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tripfolio/backend/internal/domain"
	"github.com/tripfolio/backend/internal/repo"
)

// ExportVersion is the trip export document format version this build
// produces and accepts.
const ExportVersion = 1

// ExportService produces and consumes self-contained trip documents.
// Export is a plain read. Import rebuilds a full trip inside one
// transaction, re-linking segment anchors through the aliases carried in
// the document.
type ExportService struct {
	db    repo.TxRunner
	repos repo.Repos
}

// NewExportService constructs an ExportService.
func NewExportService(db repo.TxRunner, repos repo.Repos) *ExportService {
	return &ExportService{db: db, repos: repos}
}

// Export assembles the full document for one trip.
// Returns domain.ErrNotFound if the trip does not exist for that user.
func (s *ExportService) Export(ctx context.Context, userID, tripID uuid.UUID) (domain.TripExport, error) {
	doc, err := s.export(ctx, userID, tripID)
	if err != nil {
		return domain.TripExport{}, fmt.Errorf("service.ExportService.Export: %w", err)
	}
	return doc, nil
}

func (s *ExportService) export(ctx context.Context, userID, tripID uuid.UUID) (domain.TripExport, error) {
	trip, err := s.repos.Trips.GetByID(ctx, userID, tripID)
	if err != nil {
		return domain.TripExport{}, err
	}

	doc := domain.TripExport{
		Version: ExportVersion,
		Trip: domain.ExportTrip{
			Name:      trip.Name,
			StartDate: domain.DateKey(trip.StartDate),
			EndDate:   domain.DateKey(trip.EndDate),
		},
	}

	days, err := s.repos.Days.ListByTrip(ctx, tripID)
	if err != nil {
		return domain.TripExport{}, err
	}

	for _, day := range days {
		exportDay := domain.ExportDay{Date: domain.DateKey(day.Date), DayIndex: day.DayIndex}

		acc, err := s.repos.Accommodations.GetByDay(ctx, day.ID)
		switch {
		case err == nil:
			exportDay.Accommodation = &domain.ExportAccommodation{
				Alias:    acc.ID.String(),
				Name:     acc.Name,
				Status:   acc.Status,
				Cost:     acc.Cost,
				Link:     acc.Link,
				CheckIn:  acc.CheckIn,
				CheckOut: acc.CheckOut,
				Location: acc.Location,
			}
		case !errors.Is(err, domain.ErrNotFound):
			return domain.TripExport{}, err
		}

		items, err := s.repos.Items.ListByDay(ctx, day.ID)
		if err != nil {
			return domain.TripExport{}, err
		}
		for _, it := range items {
			exportDay.Items = append(exportDay.Items, domain.ExportItem{
				Alias:     it.ID.String(),
				Content:   it.Content,
				StartTime: it.StartTime,
				EndTime:   it.EndTime,
				Location:  it.Location,
				Link:      it.Link,
				Cost:      it.Cost,
			})
		}

		segs, err := s.repos.Segments.ListByDay(ctx, day.ID)
		if err != nil {
			return domain.TripExport{}, err
		}
		for _, sg := range segs {
			exportDay.Segments = append(exportDay.Segments, domain.ExportSegment{
				From:            domain.ExportAnchor{Type: sg.From.Type, Alias: sg.From.ID.String()},
				To:              domain.ExportAnchor{Type: sg.To.Type, Alias: sg.To.ID.String()},
				Mode:            sg.Mode,
				DurationMinutes: sg.DurationMinutes,
				DistanceMeters:  sg.DistanceMeters,
				Link:            sg.Link,
			})
		}

		doc.Days = append(doc.Days, exportDay)
	}

	images, err := s.repos.Images.ListByTrip(ctx, tripID)
	if err != nil {
		return domain.TripExport{}, err
	}
	for _, img := range images {
		doc.Images = append(doc.Images, domain.ExportImage{
			FileKey:   img.FileKey,
			Alt:       img.Alt,
			SortOrder: img.SortOrder,
			Hero:      trip.HeroImageID != nil && *trip.HeroImageID == img.ID,
		})
	}

	return doc, nil
}

// Import creates a fresh trip for userID from doc. Every entity receives a
// new ID; segment anchors are re-linked through the document aliases. The
// whole import runs in one transaction, so a malformed document leaves
// nothing behind. Returns the created trip and its day count.
func (s *ExportService) Import(ctx context.Context, userID uuid.UUID, doc domain.TripExport) (domain.Trip, int, error) {
	trip, start, end, err := parseImportHeader(userID, doc)
	if err != nil {
		return domain.Trip{}, 0, err
	}

	var (
		created  domain.Trip
		dayCount int
	)
	err = s.db.InTx(ctx, func(r repo.Repos) error {
		var err error
		created, err = r.Trips.Create(ctx, trip)
		if err != nil {
			return err
		}

		// Days come from the trip's own range; document days outside it are
		// a validation error, not silently dropped content.
		docDays := make(map[string]domain.ExportDay, len(doc.Days))
		for _, d := range doc.Days {
			docDays[d.Date] = d
		}

		dates := domain.DateRange(start, end)
		dayCount = len(dates)
		covered := make(map[string]struct{}, len(dates))

		// anchorIDs maps document aliases to freshly assigned IDs.
		anchorIDs := make(map[domain.ExportAnchor]uuid.UUID)

		days := make([]domain.TripDay, 0, len(dates))
		for i, date := range dates {
			day, err := r.Days.Create(ctx, domain.DayCreate{Date: date, DayIndex: i + 1}, created.ID)
			if err != nil {
				return err
			}
			days = append(days, day)
			covered[domain.DateKey(date)] = struct{}{}

			docDay, ok := docDays[domain.DateKey(date)]
			if !ok {
				continue
			}
			if err := s.importDayContent(ctx, r, userID, created.ID, day, docDay, anchorIDs); err != nil {
				return err
			}
		}

		for date := range docDays {
			if _, ok := covered[date]; !ok {
				return fmt.Errorf("%w: day %s is outside the trip date range", domain.ErrValidation, date)
			}
		}

		// Segments last: a from-anchor may alias the previous day's stay,
		// which only exists once all days are populated.
		for _, day := range days {
			docDay, ok := docDays[domain.DateKey(day.Date)]
			if !ok {
				continue
			}
			if err := s.importSegments(ctx, r, userID, created.ID, day, docDay.Segments, anchorIDs); err != nil {
				return err
			}
		}

		return s.importImages(ctx, r, userID, created.ID, doc.Images)
	})
	if err != nil {
		return domain.Trip{}, 0, fmt.Errorf("service.ExportService.Import: %w", err)
	}

	return created, dayCount, nil
}

func parseImportHeader(userID uuid.UUID, doc domain.TripExport) (domain.Trip, time.Time, time.Time, error) {
	var zero time.Time
	if doc.Version != ExportVersion {
		return domain.Trip{}, zero, zero, fmt.Errorf("%w: unsupported export version %d", domain.ErrValidation, doc.Version)
	}

	start, err := time.Parse("2006-01-02", doc.Trip.StartDate)
	if err != nil {
		return domain.Trip{}, zero, zero, fmt.Errorf("%w: malformed start_date", domain.ErrValidation)
	}
	end, err := time.Parse("2006-01-02", doc.Trip.EndDate)
	if err != nil {
		return domain.Trip{}, zero, zero, fmt.Errorf("%w: malformed end_date", domain.ErrValidation)
	}

	trip := domain.Trip{
		UserID:    userID,
		Name:      doc.Trip.Name,
		StartDate: domain.NormalizeDate(start),
		EndDate:   domain.NormalizeDate(end),
	}
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, zero, zero, err
	}
	return trip, trip.StartDate, trip.EndDate, nil
}

func (s *ExportService) importDayContent(ctx context.Context, r repo.Repos, userID, tripID uuid.UUID, day domain.TripDay, docDay domain.ExportDay, anchorIDs map[domain.ExportAnchor]uuid.UUID) error {
	if docDay.Accommodation != nil {
		a := domain.Accommodation{
			TripDayID: day.ID,
			Name:      docDay.Accommodation.Name,
			Status:    docDay.Accommodation.Status,
			Cost:      docDay.Accommodation.Cost,
			Link:      docDay.Accommodation.Link,
			CheckIn:   docDay.Accommodation.CheckIn,
			CheckOut:  docDay.Accommodation.CheckOut,
			Location:  docDay.Accommodation.Location,
		}
		if err := validateAccommodation(a); err != nil {
			return err
		}
		created, err := r.Accommodations.Upsert(ctx, a)
		if err != nil {
			return err
		}
		key := domain.ExportAnchor{Type: domain.AnchorAccommodation, Alias: docDay.Accommodation.Alias}
		anchorIDs[key] = created.ID
	}

	// Explicit creation timestamps keep the document's item order as the
	// creation-order tiebreak for untimed items; a shared now() would
	// collapse them all onto the transaction timestamp.
	base := time.Now().UTC()
	for i, docItem := range docDay.Items {
		item := domain.DayPlanItem{
			TripDayID: day.ID,
			Content:   docItem.Content,
			StartTime: docItem.StartTime,
			EndTime:   docItem.EndTime,
			Location:  docItem.Location,
			Link:      docItem.Link,
			Cost:      docItem.Cost,
			CreatedAt: base.Add(time.Duration(i) * time.Millisecond),
		}
		if err := validatePlanItem(item); err != nil {
			return err
		}
		created, err := r.Items.Create(ctx, item)
		if err != nil {
			return err
		}
		key := domain.ExportAnchor{Type: domain.AnchorPlanItem, Alias: docItem.Alias}
		anchorIDs[key] = created.ID
	}

	return nil
}

func (s *ExportService) importSegments(ctx context.Context, r repo.Repos, userID, tripID uuid.UUID, day domain.TripDay, docSegs []domain.ExportSegment, anchorIDs map[domain.ExportAnchor]uuid.UUID) error {
	if len(docSegs) == 0 {
		return nil
	}

	timeline, err := buildDayTimeline(ctx, r, day)
	if err != nil {
		return err
	}

	for _, docSeg := range docSegs {
		fromID, ok := anchorIDs[docSeg.From]
		if !ok {
			return fmt.Errorf("%w: segment references unknown anchor alias %q", domain.ErrValidation, docSeg.From.Alias)
		}
		toID, ok := anchorIDs[docSeg.To]
		if !ok {
			return fmt.Errorf("%w: segment references unknown anchor alias %q", domain.ErrValidation, docSeg.To.Alias)
		}

		seg := domain.TravelSegment{
			TripDayID:       day.ID,
			From:            domain.AnchorRef{Type: docSeg.From.Type, ID: fromID},
			To:              domain.AnchorRef{Type: docSeg.To.Type, ID: toID},
			Mode:            docSeg.Mode,
			DurationMinutes: docSeg.DurationMinutes,
			DistanceMeters:  docSeg.DistanceMeters,
			Link:            docSeg.Link,
		}
		if err := validateSegment(seg); err != nil {
			return err
		}
		// Imported segments obey the same adjacency rule as created ones.
		if err := ensureAdjacent(seg.From, seg.To, timeline); err != nil {
			return err
		}
		if _, err := r.Segments.Create(ctx, seg); err != nil {
			return err
		}
	}

	return nil
}

func (s *ExportService) importImages(ctx context.Context, r repo.Repos, userID, tripID uuid.UUID, docImages []domain.ExportImage) error {
	for _, docImg := range docImages {
		img, err := r.Images.Create(ctx, domain.TripImage{
			TripID:  tripID,
			FileKey: docImg.FileKey,
			Alt:     docImg.Alt,
		})
		if err != nil {
			return err
		}
		if docImg.Hero {
			if err := r.Trips.SetHeroImage(ctx, userID, tripID, &img.ID); err != nil {
				return err
			}
		}
	}
	return nil
}
