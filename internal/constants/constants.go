package constants

import "time"

var CacheTTL = struct {
	DiscoverPage time.Duration
	PopularPage  time.Duration
	Trending     time.Duration
	Search       time.Duration
}{
	DiscoverPage: 30 * time.Minute, // 언어/장르별 discover 페이지
	PopularPage:  15 * time.Minute, // 인기 영화 페이지
	Trending:     10 * time.Minute, // 트렌딩 목록
	Search:       5 * time.Minute,  // 검색 결과
}

var CacheKeys = struct {
	Prefix string
}{
	Prefix: "reeltalk:catalog",
}

var RetryConfig = struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Jitter      time.Duration
}{
	MaxAttempts: 3,
	BaseDelay:   500 * time.Millisecond,
	Jitter:      250 * time.Millisecond,
}

var CircuitBreakerConfig = struct {
	FailureThreshold uint32
	ResetTimeout     time.Duration
	HalfOpenRequests uint32
}{
	FailureThreshold: 5,                // 연속 5회 실패 시 Circuit OPEN
	ResetTimeout:     30 * time.Second, // OPEN 유지 시간
	HalfOpenRequests: 1,
}

var APIConfig = struct {
	DefaultBaseURL string
	Timeout        time.Duration
	RatePerSecond  float64
	Burst          int
	MaxPage        int
}{
	DefaultBaseURL: "http://localhost:4000/api",
	Timeout:        10 * time.Second,
	RatePerSecond:  20,
	Burst:          10,
	MaxPage:        500,
}

var FetchConfig = struct {
	Concurrency int
}{
	Concurrency: 8,
}

var Recommendation = struct {
	MaxLanguages  int
	MaxGenres     int
	Limit         int
	TrendingLimit int
}{
	MaxLanguages:  2, // 홈 추천: 언어 최대 2개
	MaxGenres:     3, // 장르 최대 3개
	Limit:         6, // 결과 최대 6개
	TrendingLimit: 6,
}

var Onboarding = struct {
	MoviesPerPage int
	MaxPicks      int
	ComboPages    int
	PopularPages  int
}{
	MoviesPerPage: 24,
	MaxPicks:      5,
	ComboPages:    5,
	PopularPages:  5,
}

var StringLimits = struct {
	MovieTitle int
	Overview   int
}{
	MovieTitle: 60,
	Overview:   140,
}
