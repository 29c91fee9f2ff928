package repository

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=repository

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"realty-client/internal/biddingerrors"
	"realty-client/internal/models"
)

// UserRecord is a stored account with its password hash
type UserRecord struct {
	models.User
	PasswordHash []byte
}

// RefreshToken is an issued, not yet revoked refresh token
type RefreshToken struct {
	Token     string
	UserID    int64
	ExpiresAt time.Time
}

// BidCheck validates a bid against the auction state it will be applied to
type BidCheck func(a models.Auction) error

// AuctionDB defines the storage interface of the sandbox marketplace
type AuctionDB interface {
	CreateUser(u UserRecord) (UserRecord, error)
	GetUser(id int64) (UserRecord, error)
	FindUserByLogin(login string) (UserRecord, error)

	SaveRefreshToken(rt RefreshToken) error
	GetRefreshToken(token string) (RefreshToken, error)
	DeleteRefreshToken(token string) error

	CreateProperty(p models.Property) (models.Property, error)
	GetProperty(id int64) (models.Property, error)
	ListProperties() []models.Property
	DeleteProperty(id int64) error

	AddFavorite(userID, propertyID int64) (models.Favorite, error)
	RemoveFavorite(userID, propertyID int64) error
	ListFavorites(userID int64) []models.Favorite
	IsFavorite(userID, propertyID int64) bool

	CreateAuction(a models.Auction) (models.Auction, error)
	GetAuction(id int64) (models.Auction, error)
	ListAuctions() []models.Auction
	RecordBidForAuction(auctionID int64, bid models.Bid, check BidCheck) (models.Auction, error)
}

// MemoryRepo is a concurrency-safe in-memory implementation of AuctionDB
type MemoryRepo struct {
	mu sync.RWMutex

	nextID int64

	users         map[int64]UserRecord
	refreshTokens map[string]RefreshToken
	properties    map[int64]models.Property
	favorites     map[int64]map[int64]models.Favorite // key: userID -> propertyID -> favorite
	auctions      map[int64]models.Auction
}

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		users:         make(map[int64]UserRecord),
		refreshTokens: make(map[string]RefreshToken),
		properties:    make(map[int64]models.Property),
		favorites:     make(map[int64]map[int64]models.Favorite),
		auctions:      make(map[int64]models.Auction),
	}
}

// id hands out sequential ids shared by all entities; callers hold mu
func (r *MemoryRepo) id() int64 {
	r.nextID++
	return r.nextID
}

// CreateUser stores a new account; username, email and phone must be unique
func (r *MemoryRepo) CreateUser(u UserRecord) (UserRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if sameLogin(existing, u.Username) || sameLogin(existing, u.Email) || (u.Phone != "" && sameLogin(existing, u.Phone)) {
			return UserRecord{}, fmt.Errorf("create user %s: %w", u.Username, biddingerrors.ErrUserExists)
		}
	}

	u.ID = r.id()
	r.users[u.ID] = u
	return u, nil
}

// GetUser returns the account with id
func (r *MemoryRepo) GetUser(id int64) (UserRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return UserRecord{}, fmt.Errorf("get user %d: %w", id, biddingerrors.ErrUserNotFound)
	}
	return u, nil
}

// FindUserByLogin matches username, email or phone
func (r *MemoryRepo) FindUserByLogin(login string) (UserRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if sameLogin(u, login) {
			return u, nil
		}
	}
	return UserRecord{}, fmt.Errorf("find user %s: %w", login, biddingerrors.ErrUserNotFound)
}

func sameLogin(u UserRecord, login string) bool {
	login = strings.TrimSpace(login)
	if login == "" {
		return false
	}
	return strings.EqualFold(u.Username, login) || strings.EqualFold(u.Email, login) || (u.Phone != "" && u.Phone == login)
}

// SaveRefreshToken records an issued refresh token
func (r *MemoryRepo) SaveRefreshToken(rt RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refreshTokens[rt.Token] = rt
	return nil
}

// GetRefreshToken returns a refresh token that has not been revoked
func (r *MemoryRepo) GetRefreshToken(token string) (RefreshToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rt, ok := r.refreshTokens[token]
	if !ok {
		return RefreshToken{}, fmt.Errorf("get refresh token: %w", biddingerrors.ErrRefreshTokenNotFound)
	}
	return rt, nil
}

// DeleteRefreshToken revokes a refresh token
func (r *MemoryRepo) DeleteRefreshToken(token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.refreshTokens[token]; !ok {
		return fmt.Errorf("delete refresh token: %w", biddingerrors.ErrRefreshTokenNotFound)
	}
	delete(r.refreshTokens, token)
	return nil
}

// CreateProperty stores a listing and assigns its id
func (r *MemoryRepo) CreateProperty(p models.Property) (models.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[p.OwnerID]; !ok {
		return models.Property{}, fmt.Errorf("create property: owner %d: %w", p.OwnerID, biddingerrors.ErrUserNotFound)
	}

	p.ID = r.id()
	r.properties[p.ID] = p
	return p, nil
}

// GetProperty returns a listing by id
func (r *MemoryRepo) GetProperty(id int64) (models.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.properties[id]
	if !ok {
		return models.Property{}, fmt.Errorf("get property %d: %w", id, biddingerrors.ErrPropertyNotFound)
	}
	return p, nil
}

// ListProperties returns all listings, newest first
func (r *MemoryRepo) ListProperties() []models.Property {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Property, 0, len(r.properties))
	for _, p := range r.properties {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

// DeleteProperty removes a listing and every favorite pointing at it
func (r *MemoryRepo) DeleteProperty(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.properties[id]; !ok {
		return fmt.Errorf("delete property %d: %w", id, biddingerrors.ErrPropertyNotFound)
	}
	delete(r.properties, id)
	for _, favs := range r.favorites {
		delete(favs, id)
	}
	return nil
}

// AddFavorite saves a listing for a user
func (r *MemoryRepo) AddFavorite(userID, propertyID int64) (models.Favorite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.properties[propertyID]
	if !ok {
		return models.Favorite{}, fmt.Errorf("add favorite %d: %w", propertyID, biddingerrors.ErrPropertyNotFound)
	}

	favs := r.favorites[userID]
	if favs == nil {
		favs = make(map[int64]models.Favorite)
		r.favorites[userID] = favs
	}
	if _, exists := favs[propertyID]; exists {
		return models.Favorite{}, fmt.Errorf("add favorite %d: %w", propertyID, biddingerrors.ErrFavoriteExists)
	}

	fav := models.Favorite{ID: r.id(), PropertyID: propertyID, PropertyDetails: &p, CreatedAt: time.Now().UTC()}
	favs[propertyID] = fav
	return fav, nil
}

// RemoveFavorite drops a saved listing
func (r *MemoryRepo) RemoveFavorite(userID, propertyID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.favorites[userID][propertyID]; !ok {
		return fmt.Errorf("remove favorite %d: %w", propertyID, biddingerrors.ErrFavoriteNotFound)
	}
	delete(r.favorites[userID], propertyID)
	return nil
}

// ListFavorites returns a user's saved listings, oldest first
func (r *MemoryRepo) ListFavorites(userID int64) []models.Favorite {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Favorite, 0, len(r.favorites[userID]))
	for _, f := range r.favorites[userID] {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// IsFavorite reports whether the user saved the listing
func (r *MemoryRepo) IsFavorite(userID, propertyID int64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.favorites[userID][propertyID]
	return ok
}

// CreateAuction stores an auction for an existing property
func (r *MemoryRepo) CreateAuction(a models.Auction) (models.Auction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.properties[a.PropertyID]; !ok {
		return models.Auction{}, fmt.Errorf("create auction: property %d: %w", a.PropertyID, biddingerrors.ErrPropertyNotFound)
	}

	a.ID = r.id()
	r.auctions[a.ID] = a
	return cloneAuction(a), nil
}

// GetAuction returns an auction with its bids, newest first
func (r *MemoryRepo) GetAuction(id int64) (models.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.auctions[id]
	if !ok {
		return models.Auction{}, fmt.Errorf("get auction %d: %w", id, biddingerrors.ErrAuctionNotFound)
	}
	return cloneAuction(a), nil
}

// ListAuctions returns all auctions, newest first
func (r *MemoryRepo) ListAuctions() []models.Auction {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Auction, 0, len(r.auctions))
	for _, a := range r.auctions {
		out = append(out, cloneAuction(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

// RecordBidForAuction applies a bid atomically: check runs under the write
// lock against the current auction state, so concurrent bids are ordered.
// On success the bid becomes the current price and heads the history.
func (r *MemoryRepo) RecordBidForAuction(auctionID int64, bid models.Bid, check BidCheck) (models.Auction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.auctions[auctionID]
	if !ok {
		return models.Auction{}, fmt.Errorf("record bid for auction %d: %w", auctionID, biddingerrors.ErrAuctionNotFound)
	}

	if check != nil {
		if err := check(a); err != nil {
			return models.Auction{}, err
		}
	}

	bid.ID = r.id()
	if u, ok := r.users[bid.BidderID]; ok && bid.BidderName == "" {
		bid.BidderName = u.Username
	}

	a.Bids = append([]models.Bid{bid}, a.Bids...)
	a.CurrentPrice = bid.Amount

	if a.TargetPrice != nil && (a.EndType == models.EndByPrice || a.EndType == models.EndByBoth) && bid.Amount >= *a.TargetPrice {
		a.Status = models.AuctionCompleted
		a.IsActive = false
		winner, name := bid.BidderID, bid.BidderName
		a.WinnerID, a.WinnerName = &winner, &name
	}

	r.auctions[auctionID] = a
	return cloneAuction(a), nil
}

func cloneAuction(a models.Auction) models.Auction {
	a.Bids = append([]models.Bid(nil), a.Bids...)
	return a
}
