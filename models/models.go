package models

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"regexp"
	"sync/atomic"
	"time"
)

// Account is a registered user. The password hash is write-only and never
// leaves the process in a response body.
type Account struct {
	ID        string    `gorm:"type:char(24);primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(120);not null" json:"name"`
	Username  string    `gorm:"type:varchar(60);uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"type:varchar(100)" json:"-"`
	Bio       string    `gorm:"type:text" json:"bio"`
	AvatarURL string    `gorm:"type:varchar(500)" json:"avatarUrl"`
	LastLogin time.Time `json:"lastLogin"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Post is a single uploaded clip plus its engagement state.
//
// UploadedBy is the legacy free-form uploader reference: historically either a
// stringified account id or a literal username. UploaderID is the newer proper
// foreign key, populated only for posts created after the column existed.
// Neither field is authoritative on its own; readers resolve them through
// feed.Resolver.
type Post struct {
	ID          string   `gorm:"type:char(24);primaryKey" json:"id"`
	Title       string   `gorm:"type:varchar(200);not null" json:"title"`
	Description string   `gorm:"type:text" json:"description"`
	MediaURL    string   `gorm:"type:varchar(500);not null" json:"mediaUrl"`
	UploadedBy  string   `gorm:"type:varchar(255);not null;index" json:"uploadedBy"`
	UploaderID  *string  `gorm:"type:char(24);index" json:"uploaderId,omitempty"`
	Uploader    *Account `gorm:"foreignKey:UploaderID" json:"-"`

	// Denormalized counters. Like and save membership lives in Redis sets;
	// these columns are refreshed by the background counter sync so feed
	// reads do not fan out to Redis per post.
	LikeCount  int64 `json:"likesCount"`
	SaveCount  int64 `json:"savesCount"`
	ShareCount int64 `json:"shareCount"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Comment is one append-only entry in a post's comment log. Comments are
// immutable once posted: there is no update or delete path.
type Comment struct {
	ID        string    `gorm:"type:char(24);primaryKey" json:"id"`
	PostID    string    `gorm:"type:char(24);not null;index" json:"postId"`
	AccountID string    `gorm:"type:char(24);not null" json:"accountId"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// PostView is a Post enriched with the resolved uploader display name.
type PostView struct {
	Post
	UploadedByUsername *string `json:"uploadedByUsername"`
}

// CommentView is a Comment enriched with the commenter's username. When the
// account can no longer be resolved the raw account id is echoed instead.
type CommentView struct {
	Comment
	Username string `json:"username"`
}

// AccountView is the public projection used by search results.
type AccountView struct {
	Username  string `json:"username"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
}

var accountIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// IsAccountID reports whether s is syntactically a valid account id: a
// fixed-length 24-character hex string. The uploader reference is sniffed
// with this to tell stringified ids from legacy literal usernames.
func IsAccountID(s string) bool {
	return accountIDPattern.MatchString(s)
}

var (
	idProcess [5]byte
	idCounter uint32
)

func init() {
	var seed [9]byte
	if _, err := rand.Read(seed[:]); err != nil {
		panic("models: crypto/rand failed: " + err.Error())
	}
	copy(idProcess[:], seed[:5])
	idCounter = binary.BigEndian.Uint32(seed[5:]) & 0xFFFFFF
}

// NewID returns a fresh 24-hex-character identifier: a 4-byte unix
// timestamp, 5 random per-process bytes, and a 3-byte incrementing counter.
// Ids minted by one process therefore sort in creation order, which tiebreak
// clauses on `id` rely on for rows sharing a timestamp.
func NewID() string {
	var b [12]byte
	binary.BigEndian.PutUint32(b[0:4], uint32(time.Now().Unix()))
	copy(b[4:9], idProcess[:])
	c := atomic.AddUint32(&idCounter, 1)
	b[9] = byte(c >> 16)
	b[10] = byte(c >> 8)
	b[11] = byte(c)
	return hex.EncodeToString(b[:])
}
