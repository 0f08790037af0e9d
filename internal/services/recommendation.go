package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	redisclient "github.com/yungbote/learnloop-backend/internal/clients/redis"
	"github.com/yungbote/learnloop-backend/internal/logger"
	"github.com/yungbote/learnloop-backend/internal/recommend"
	"github.com/yungbote/learnloop-backend/internal/repos"
	"github.com/yungbote/learnloop-backend/internal/types"
)

type RecommendationService interface {
	// Recommend returns up to limit ranked learning items for the user and
	// appends an "automatic" entry to the recommendation log.
	Recommend(ctx context.Context, userID uuid.UUID, limit int) ([]recommend.RankedItem, error)
	// Refresh recomputes from a fresh snapshot, identical to Recommend
	// except the log entry is tagged "manual".
	Refresh(ctx context.Context, userID uuid.UUID, limit int) ([]recommend.RankedItem, error)
	// History returns the user's recent recommendation log rows.
	History(ctx context.Context, userID uuid.UUID, limit int) ([]*types.RecommendationLog, error)
}

type recommendationService struct {
	db           *gorm.DB
	log          *logger.Logger
	cfg          recommend.Config
	userRepo     repos.UserRepo
	itemRepo     repos.LearningItemRepo
	progressRepo repos.ItemProgressRepo
	logRepo      repos.RecommendationLogRepo
	bus          redisclient.RecoBus
}

// NewRecommendationService wires the scoring engine to its stores. bus may
// be nil when redis is not configured; publishing is then skipped.
func NewRecommendationService(
	db *gorm.DB,
	log *logger.Logger,
	cfg recommend.Config,
	userRepo repos.UserRepo,
	itemRepo repos.LearningItemRepo,
	progressRepo repos.ItemProgressRepo,
	logRepo repos.RecommendationLogRepo,
	bus redisclient.RecoBus,
) RecommendationService {
	serviceLog := log.With("service", "RecommendationService")
	return &recommendationService{
		db:           db,
		log:          serviceLog,
		cfg:          cfg,
		userRepo:     userRepo,
		itemRepo:     itemRepo,
		progressRepo: progressRepo,
		logRepo:      logRepo,
		bus:          bus,
	}
}

func (rs *recommendationService) Recommend(ctx context.Context, userID uuid.UUID, limit int) ([]recommend.RankedItem, error) {
	return rs.recommendFor(ctx, userID, limit, types.TriggerAutomatic)
}

func (rs *recommendationService) Refresh(ctx context.Context, userID uuid.UUID, limit int) ([]recommend.RankedItem, error) {
	return rs.recommendFor(ctx, userID, limit, types.TriggerManual)
}

func (rs *recommendationService) History(ctx context.Context, userID uuid.UUID, limit int) ([]*types.RecommendationLog, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user id required")
	}
	rows, err := rs.logRepo.GetRecentByUserID(ctx, nil, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("error fetching recommendation history: %w", err)
	}
	return rows, nil
}

// snapshot holds everything one recommendation computation reads. It is
// taken once at the start of the call; nothing is re-read mid-scoring.
type snapshot struct {
	user      *types.User
	curated   []*types.LearningItem
	personal  []*types.LearningItem
	own       []*types.LearningItem
	community []*types.LearningItem
	completed []*types.ItemProgress
}

func (rs *recommendationService) recommendFor(ctx context.Context, userID uuid.UUID, limit int, trigger string) ([]recommend.RankedItem, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user id required")
	}

	snap, err := rs.takeSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	sources := recommend.Sources{
		Curated:      toEngineItems(snap.curated),
		Personalized: toEngineItems(snap.personal),
		Own:          toEngineItems(snap.own),
		Community:    toEngineItems(snap.community),
	}

	completedIDs := make(map[uuid.UUID]struct{}, len(snap.completed))
	records := make([]recommend.CompletedRecord, 0, len(snap.completed))
	for _, p := range snap.completed {
		completedIDs[p.ItemID] = struct{}{}
		rec := recommend.CompletedRecord{Score: p.Score}
		if p.Item == nil {
			// Progress pointing at a deleted item still marks the item
			// completed but contributes nothing to mastery.
			rec.ItemMissing = true
		} else {
			rec.Tags = p.Item.TagList()
		}
		records = append(records, rec)
	}

	interests := recommend.ParseInterests(snap.user.Interests)
	pool, vocabulary := recommend.Assemble(sources, completedIDs, records, interests, rs.cfg.PrereqMasteryThreshold)

	mastery := recommend.EstimateMastery(records, vocabulary)
	ranked := recommend.Rank(pool, mastery, userID, rs.cfg)

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	rs.appendLog(ctx, userID, ranked, trigger)

	rs.log.Debug("Recommendation computed",
		"user_id", userID,
		"trigger", trigger,
		"pool_size", len(pool),
		"returned", len(ranked),
	)
	return ranked, nil
}

func (rs *recommendationService) takeSnapshot(ctx context.Context, userID uuid.UUID) (*snapshot, error) {
	users, err := rs.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	if len(users) == 0 || users[0] == nil {
		return nil, fmt.Errorf("user does not exist")
	}

	snap := &snapshot{user: users[0]}

	// The five reads are independent, so they run concurrently; the
	// computation itself stays single-threaded over the snapshot.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap.curated, err = rs.itemRepo.GetCurated(gctx, nil)
		return err
	})
	g.Go(func() error {
		var err error
		snap.personal, err = rs.itemRepo.GetPersonalizedFor(gctx, nil, userID)
		return err
	})
	g.Go(func() error {
		var err error
		snap.own, err = rs.itemRepo.GetOwnedBy(gctx, nil, userID)
		return err
	})
	g.Go(func() error {
		var err error
		snap.community, err = rs.itemRepo.GetPublicCommunity(gctx, nil, userID)
		return err
	})
	g.Go(func() error {
		var err error
		snap.completed, err = rs.progressRepo.GetByUserAndStatus(gctx, nil, userID, types.ProgressCompleted)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("error reading recommendation snapshot: %w", err)
	}
	return snap, nil
}

// appendLog writes the ranked list to the recommendation log and publishes
// a redis event. Both are observability side effects: failures are warned
// about and never surfaced to the caller.
func (rs *recommendationService) appendLog(ctx context.Context, userID uuid.UUID, ranked []recommend.RankedItem, trigger string) {
	entries := make([]types.RecommendationLogEntry, 0, len(ranked))
	for _, r := range ranked {
		entries = append(entries, types.RecommendationLogEntry{
			ItemID: r.Item.ID,
			Score:  r.Score,
			Reason: r.Reason,
		})
	}

	raw, err := json.Marshal(entries)
	if err != nil {
		rs.log.Warn("Failed to encode recommendation log entries", "error", err)
		return
	}
	row := &types.RecommendationLog{
		UserID:  userID,
		Entries: datatypes.JSON(raw),
		Trigger: trigger,
	}
	if _, err := rs.logRepo.Create(ctx, nil, row); err != nil {
		rs.log.Warn("Failed to append recommendation log", "user_id", userID, "error", err)
	}

	if rs.bus == nil {
		return
	}
	event := redisclient.RecommendationEvent{
		UserID:    userID,
		Trigger:   trigger,
		Count:     len(ranked),
		CreatedAt: time.Now().UTC(),
	}
	if err := rs.bus.Publish(ctx, event); err != nil {
		rs.log.Warn("Failed to publish recommendation event", "user_id", userID, "error", err)
	}
}

func toEngineItems(rows []*types.LearningItem) []recommend.Item {
	items := make([]recommend.Item, 0, len(rows))
	for _, row := range rows {
		if row == nil {
			continue
		}
		item := recommend.Item{
			ID:              row.ID,
			Title:           row.Title,
			Kind:            row.Kind,
			Tags:            row.TagList(),
			PrereqTags:      row.PrereqTagList(),
			Difficulty:      row.Difficulty,
			Visits:          row.Visits,
			Rating:          row.Rating,
			PersonalizedFor: row.PersonalizedForIDs(),
		}
		if row.OwnerID != nil {
			item.OwnerID = *row.OwnerID
		}
		items = append(items, item)
	}
	return items
}
