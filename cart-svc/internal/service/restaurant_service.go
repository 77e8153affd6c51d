package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"foodhub/cart-svc/internal/domain"
)

var (
	ErrRestaurantNotFound     = domain.NotFound("restaurant not found")
	ErrRestaurantNameRequired = domain.Validation("restaurant name is required")
)

const SortByDeliveryTime = "deliveryTime"

type RestaurantFilter struct {
	Cuisine   string
	City      string
	Search    string
	MinRating float64
	Sort      string
}

// RestaurantService serves the restaurant catalog. Reads go through the
// injected cache; every write invalidates it.
type RestaurantService struct {
	repo  RestaurantRepository
	cache RestaurantCache
	log   logrus.FieldLogger
	now   func() time.Time
}

// NewRestaurantService builds the service. A nil cache reads straight from repo.
func NewRestaurantService(repo RestaurantRepository, cache RestaurantCache, log logrus.FieldLogger) *RestaurantService {
	return &RestaurantService{repo: repo, cache: cache, log: log, now: time.Now}
}

func (s *RestaurantService) All(ctx context.Context) ([]domain.Restaurant, error) {
	if s.cache == nil {
		return s.repo.ListRestaurants(ctx)
	}
	return s.cache.GetOrRefresh(ctx, s.repo.ListRestaurants)
}

func (s *RestaurantService) List(ctx context.Context, filter RestaurantFilter) ([]domain.Restaurant, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Restaurant, 0, len(all))
	for _, rest := range all {
		if filter.matches(rest) {
			result = append(result, rest)
		}
	}

	if filter.Sort == SortByDeliveryTime {
		sort.SliceStable(result, func(i, j int) bool { return result[i].DeliveryTime < result[j].DeliveryTime })
	} else {
		sort.SliceStable(result, func(i, j int) bool { return result[i].Rating > result[j].Rating })
	}
	return result, nil
}

func (f RestaurantFilter) matches(rest domain.Restaurant) bool {
	if f.Cuisine != "" && !containsFold(rest.Cuisine, f.Cuisine) {
		return false
	}
	if f.City != "" && !containsFold(rest.City, f.City) && !containsFold(rest.Address, f.City) && !containsFold(rest.State, f.City) {
		return false
	}
	if f.Search != "" && !containsFold(rest.Name, f.Search) && !containsFold(rest.Cuisine, f.Search) && !containsFold(rest.Description, f.Search) {
		return false
	}
	if f.MinRating > 0 && rest.Rating < f.MinRating {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// Cities returns the distinct non-empty cities of the catalog, sorted.
func (s *RestaurantService) Cities(ctx context.Context) ([]string, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	cities := make([]string, 0)
	for _, rest := range all {
		city := strings.TrimSpace(rest.City)
		if city == "" {
			continue
		}
		if _, ok := seen[city]; ok {
			continue
		}
		seen[city] = struct{}{}
		cities = append(cities, city)
	}
	sort.Strings(cities)
	return cities, nil
}

func (s *RestaurantService) Get(ctx context.Context, restaurantID string) (*domain.Restaurant, error) {
	rest, err := s.repo.GetRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if rest == nil {
		return nil, ErrRestaurantNotFound
	}
	return rest, nil
}

func (s *RestaurantService) Create(ctx context.Context, rest *domain.Restaurant) error {
	if strings.TrimSpace(rest.Name) == "" {
		return ErrRestaurantNameRequired
	}
	if rest.RestaurantID == "" {
		rest.RestaurantID = uuid.NewString()
	}
	now := s.now().UTC()
	rest.CreatedAt = now
	rest.UpdatedAt = now

	if err := s.repo.SaveRestaurant(ctx, rest); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *RestaurantService) Update(ctx context.Context, rest *domain.Restaurant) error {
	if strings.TrimSpace(rest.Name) == "" {
		return ErrRestaurantNameRequired
	}
	existing, err := s.Get(ctx, rest.RestaurantID)
	if err != nil {
		return err
	}
	rest.CreatedAt = existing.CreatedAt
	rest.UpdatedAt = s.now().UTC()

	if err := s.repo.SaveRestaurant(ctx, rest); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *RestaurantService) Delete(ctx context.Context, restaurantID string) error {
	if _, err := s.Get(ctx, restaurantID); err != nil {
		return err
	}
	if err := s.repo.DeleteRestaurant(ctx, restaurantID); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// invalidate drops the cached catalog. A failure leaves a stale entry that
// expires on its own, so it is only logged.
func (s *RestaurantService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.WithError(err).Warn("restaurant cache invalidation failed")
	}
}
