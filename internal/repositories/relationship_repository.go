package repositories

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
	"github.com/sociafam/backend/internal/models"
	"gorm.io/gorm"
)

// RelationshipRepository defines the interface for the friendship graph.
// Rows are directional (requester -> target) but accepted relationships are
// symmetric, so lookups always consider both orderings of a pair.
type RelationshipRepository interface {
	ResolvePairState(a, b uint) (models.PairState, error)
	AcceptedFriendIDs(userID uint) ([]uint, error)
	SendRequest(initiator *models.User, targetID uint) (*models.Relationship, error)
	AcceptRequest(responderID, relationshipID uint) (*models.Relationship, error)
	GetPendingRequests(userID uint) ([]models.Relationship, error)
	GetFriends(userID uint) ([]models.User, error)
	Unfriend(userID, friendUserID uint) error
	SetCloseFriend(userID, friendUserID uint, close bool) error
}

// PostgresRelationshipRepository implements RelationshipRepository for PostgreSQL
type PostgresRelationshipRepository struct {
	db *gorm.DB
}

// NewPostgresRelationshipRepository creates a new PostgresRelationshipRepository
func NewPostgresRelationshipRepository(db *gorm.DB) *PostgresRelationshipRepository {
	return &PostgresRelationshipRepository{db: db}
}

// pairRows loads every relationship row between two users, in either order.
// The unique pair invariant means this is normally zero or one row, but the
// resolver must not fall over when legacy data violates it.
func pairRows(tx *gorm.DB, a, b uint) ([]models.Relationship, error) {
	var rows []models.Relationship
	err := tx.Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
		a, b, b, a).Find(&rows).Error
	return rows, err
}

// classifyPair reduces the rows for a pair to a single state as seen by
// viewer. When more than one row exists the most restrictive state wins:
// blocked over accepted, accepted over pending.
func classifyPair(viewer uint, rows []models.Relationship) models.PairState {
	state := models.PairNone
	for _, rel := range rows {
		switch rel.Status {
		case models.StatusBlocked:
			return models.PairBlocked
		case models.StatusAccepted:
			state = models.PairAccepted
		case models.StatusPending:
			if state != models.PairNone {
				continue
			}
			if rel.UserID == viewer {
				state = models.PairPendingOutgoing
			} else {
				state = models.PairPendingIncoming
			}
		}
	}
	return state
}

// ResolvePairState classifies the relationship between two users from a's view
func (r *PostgresRelationshipRepository) ResolvePairState(a, b uint) (models.PairState, error) {
	rows, err := pairRows(r.db, a, b)
	if err != nil {
		return models.PairNone, storeErr("resolve pair state", err)
	}
	return classifyPair(a, rows), nil
}

// AcceptedFriendIDs returns the deduplicated ids of every user with an
// accepted relationship touching userID, resolved from the other side of
// each directional row. The caller decides whether to union in userID.
func (r *PostgresRelationshipRepository) AcceptedFriendIDs(userID uint) ([]uint, error) {
	var rels []models.Relationship
	if err := r.db.Where("(user_id = ? OR friend_id = ?) AND status = ?",
		userID, userID, models.StatusAccepted).Find(&rels).Error; err != nil {
		return nil, storeErr("list accepted friends", err)
	}

	ids := make([]uint, 0, len(rels))
	for _, rel := range rels {
		if rel.UserID == userID {
			ids = append(ids, rel.FriendID)
		} else {
			ids = append(ids, rel.UserID)
		}
	}
	return lo.Uniq(ids), nil
}

// SendRequest creates a pending relationship row and the matching
// notification for the target in a single transaction, so a request can
// never exist without its notification.
func (r *PostgresRelationshipRepository) SendRequest(initiator *models.User, targetID uint) (*models.Relationship, error) {
	if initiator.ID == targetID {
		return nil, ErrSelfRequest
	}

	rel := &models.Relationship{
		UserID:   initiator.ID,
		FriendID: targetID,
		Status:   models.StatusPending,
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		rows, err := pairRows(tx, initiator.ID, targetID)
		if err != nil {
			return err
		}
		if len(rows) > 0 {
			return &ConflictError{State: classifyPair(initiator.ID, rows)}
		}
		if err := tx.Create(rel).Error; err != nil {
			return err
		}
		event := models.FriendRequestEvent{
			TargetUserID:     targetID,
			ActorDisplayName: initiator.Username,
			ActorProfileLink: fmt.Sprintf("/profile/%d", initiator.ID),
		}
		notification := &models.Notification{
			UserID:  event.TargetUserID,
			ActorID: initiator.ID,
			Content: fmt.Sprintf("%s sent you a friend request", event.ActorDisplayName),
			Link:    event.ActorProfileLink,
		}
		return tx.Create(notification).Error
	})
	if err != nil {
		var conflict *ConflictError
		if errors.As(err, &conflict) {
			return nil, err
		}
		return nil, storeErr("send friend request", err)
	}
	return rel, nil
}

// AcceptRequest marks a pending request as accepted. Only the target of the
// row may accept; the requester accepting their own request is rejected.
// No notification is emitted for acceptance.
func (r *PostgresRelationshipRepository) AcceptRequest(responderID, relationshipID uint) (*models.Relationship, error) {
	var rel models.Relationship
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&rel, relationshipID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if rel.FriendID != responderID {
			return ErrUnauthorized
		}
		if rel.Status != models.StatusPending {
			return &ConflictError{State: classifyPair(responderID, []models.Relationship{rel})}
		}
		rel.Status = models.StatusAccepted
		return tx.Model(&rel).Update("status", models.StatusAccepted).Error
	})
	if err != nil {
		var conflict *ConflictError
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrUnauthorized) || errors.As(err, &conflict) {
			return nil, err
		}
		return nil, storeErr("accept friend request", err)
	}
	return &rel, nil
}

// GetPendingRequests retrieves pending requests targeting a user
func (r *PostgresRelationshipRepository) GetPendingRequests(userID uint) ([]models.Relationship, error) {
	var requests []models.Relationship
	if err := r.db.Where("friend_id = ? AND status = ?", userID, models.StatusPending).
		Order("created_at DESC").Find(&requests).Error; err != nil {
		return nil, storeErr("list pending requests", err)
	}
	return requests, nil
}

// GetFriends retrieves the accepted friends of a user, resolved from both
// sides of the directional rows
func (r *PostgresRelationshipRepository) GetFriends(userID uint) ([]models.User, error) {
	subQuery1 := r.db.Table("friends").Select("friend_id").
		Where("user_id = ? AND status = ?", userID, models.StatusAccepted)
	subQuery2 := r.db.Table("friends").Select("user_id").
		Where("friend_id = ? AND status = ?", userID, models.StatusAccepted)

	var friends []models.User
	if err := r.db.Where("id IN (?) OR id IN (?)", subQuery1, subQuery2).
		Order("id").Find(&friends).Error; err != nil {
		return nil, storeErr("list friends", err)
	}
	return friends, nil
}

// Unfriend deletes the accepted relationship row between two users
func (r *PostgresRelationshipRepository) Unfriend(userID, friendUserID uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		rows, err := pairRows(tx, userID, friendUserID)
		if err != nil {
			return err
		}
		for _, rel := range rows {
			if rel.Status == models.StatusAccepted {
				return tx.Delete(&models.Relationship{}, rel.ID).Error
			}
		}
		return ErrNotFound
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return storeErr("unfriend", err)
	}
	return nil
}

// SetCloseFriend flips the close-friend flag on an accepted relationship row
func (r *PostgresRelationshipRepository) SetCloseFriend(userID, friendUserID uint, close bool) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		rows, err := pairRows(tx, userID, friendUserID)
		if err != nil {
			return err
		}
		for _, rel := range rows {
			if rel.Status == models.StatusAccepted {
				return tx.Model(&models.Relationship{}).Where("id = ?", rel.ID).
					Update("is_close_friend", close).Error
			}
		}
		return ErrNotFound
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return storeErr("set close friend", err)
	}
	return nil
}
