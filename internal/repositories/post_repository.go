package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/sociafam/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	GetPostsByUserID(ctx context.Context, userID uint, skip, limit int64) ([]models.Post, error)
	GetPostsByAuthors(ctx context.Context, authorIDs []uint, skip, limit int64) ([]models.Post, error)
	CountPostsByAuthors(ctx context.Context, authorIDs []uint) (int64, error)
	DeletePost(ctx context.Context, id string) error
	SetPinned(ctx context.Context, id string, pinned bool) error
	SetLikesCount(ctx context.Context, postID string, count int64) error
	IncrementCommentsCount(ctx context.Context, postID string) error
	DecrementCommentsCount(ctx context.Context, postID string) error
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts")}
}

// feedSort orders newest first; the ObjectID tiebreak keeps equal timestamps
// in stable insertion order.
var feedSort = bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}

// CreatePost creates a new post in MongoDB
func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	if post.PostType == "" {
		post.PostType = "post"
	}
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	if _, err := r.collection.InsertOne(ctx, post); err != nil {
		return storeErr("create post", err)
	}
	return nil
}

// GetPostByID retrieves a post by ID from MongoDB
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var post models.Post
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, storeErr("get post", err)
	}
	return &post, nil
}

// GetPostsByUserID retrieves posts by a specific user, newest first
func (r *MongoPostRepository) GetPostsByUserID(ctx context.Context, userID uint, skip, limit int64) ([]models.Post, error) {
	return r.findPosts(ctx, bson.M{"user_id": userID}, skip, limit)
}

// GetPostsByAuthors retrieves the posts of the given author set, newest
// first, with offset pagination. This is the feed query: the author set is
// the viewer plus their accepted friends.
func (r *MongoPostRepository) GetPostsByAuthors(ctx context.Context, authorIDs []uint, skip, limit int64) ([]models.Post, error) {
	return r.findPosts(ctx, bson.M{"user_id": bson.M{"$in": authorIDs}}, skip, limit)
}

// CountPostsByAuthors counts every post of the given author set
func (r *MongoPostRepository) CountPostsByAuthors(ctx context.Context, authorIDs []uint) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"user_id": bson.M{"$in": authorIDs}})
	if err != nil {
		return 0, storeErr("count posts", err)
	}
	return count, nil
}

func (r *MongoPostRepository) findPosts(ctx context.Context, filter bson.M, skip, limit int64) ([]models.Post, error) {
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(feedSort)
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, storeErr("find posts", err)
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, storeErr("decode posts", err)
	}
	return posts, nil
}

// DeletePost deletes a post by ID from MongoDB
func (r *MongoPostRepository) DeletePost(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return storeErr("delete post", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetPinned updates the pinned flag of a post
func (r *MongoPostRepository) SetPinned(ctx context.Context, id string, pinned bool) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID},
		bson.M{"$set": bson.M{"is_pinned": pinned, "updated_at": time.Now()}})
	if err != nil {
		return storeErr("pin post", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetLikesCount stores the authoritative like count on the post document.
// The Postgres like rows are the source of truth; this keeps the display
// counter in sync after a reaction toggle.
func (r *MongoPostRepository) SetLikesCount(ctx context.Context, postID string, count int64) error {
	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return ErrNotFound
	}
	if _, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID},
		bson.M{"$set": bson.M{"likes_count": count}}); err != nil {
		return storeErr("set likes count", err)
	}
	return nil
}

// IncrementCommentsCount increments the comments count of a post
func (r *MongoPostRepository) IncrementCommentsCount(ctx context.Context, postID string) error {
	return r.incCommentsCount(ctx, postID, 1)
}

// DecrementCommentsCount decrements the comments count of a post
func (r *MongoPostRepository) DecrementCommentsCount(ctx context.Context, postID string) error {
	return r.incCommentsCount(ctx, postID, -1)
}

func (r *MongoPostRepository) incCommentsCount(ctx context.Context, postID string, delta int) error {
	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return ErrNotFound
	}
	if _, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID},
		bson.M{"$inc": bson.M{"comments_count": delta}}); err != nil {
		return storeErr("update comments count", err)
	}
	return nil
}
