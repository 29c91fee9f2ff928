package perftests

import (
	"fmt"
	"math/rand"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	bidding "realty-client/internal/biddingService"
	"realty-client/internal/models"
	"realty-client/internal/repository"
)

const benchStartPrice = 100_000_000

// LoadScenario defines configurable benchmark parameters
type LoadScenario struct {
	Name            string
	NumBidders      int
	NumAuctions     int
	ReadRatio       int
	MaxBidIncrement int
	Burst           bool // if true, no delay between ops
}

// OperationMetrics collects latencies safely
type OperationMetrics struct {
	mu        sync.Mutex
	latencies []time.Duration
}

func (om *OperationMetrics) Record(d time.Duration) {
	om.mu.Lock()
	om.latencies = append(om.latencies, d)
	om.mu.Unlock()
}

func (om *OperationMetrics) Stats() (min, max, avg, p95, p99 time.Duration) {
	om.mu.Lock()
	latencies := append([]time.Duration(nil), om.latencies...)
	om.mu.Unlock()

	if len(latencies) == 0 {
		return
	}
	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })

	min = latencies[0]
	max = latencies[len(latencies)-1]

	var total time.Duration
	for _, d := range latencies {
		total += d
	}
	avg = total / time.Duration(len(latencies))
	p95 = latencies[int(0.95*float64(len(latencies)-1))]
	p99 = latencies[int(0.99*float64(len(latencies)-1))]
	return
}

// setupAuctions creates a repository with one seller and numAuctions open
// time-bound auctions, each on its own listing
func setupAuctions(tb testing.TB, numAuctions int) (*bidding.BiddingService, []int64) {
	tb.Helper()

	repo := repository.NewMemoryRepo()
	clock := clockwork.NewFakeClock()
	svc := bidding.NewBiddingService(repo, clock)

	seller, err := repo.CreateUser(repository.UserRecord{User: models.User{
		Username: "bench_seller",
		FullName: "Bench Seller",
		Email:    "seller@bench.local",
		Role:     models.RoleSeller,
	}})
	if err != nil {
		tb.Fatalf("failed to create seller: %v", err)
	}

	end := clock.Now().Add(24 * time.Hour)
	ids := make([]int64, 0, numAuctions)
	for i := 0; i < numAuctions; i++ {
		p, err := repo.CreateProperty(models.Property{
			Title:   fmt.Sprintf("Квартира %d", i),
			Type:    models.PropertySale,
			Status:  "active",
			Price:   benchStartPrice,
			OwnerID: seller.ID,
		})
		if err != nil {
			tb.Fatalf("failed to create property: %v", err)
		}

		a, err := svc.CreateAuction(seller.User, models.AuctionInput{
			PropertyID: p.ID,
			StartPrice: benchStartPrice,
			StartTime:  clock.Now(),
			EndTime:    &end,
			EndType:    models.EndByTime,
		})
		if err != nil {
			tb.Fatalf("failed to create auction: %v", err)
		}
		ids = append(ids, a.ID)
	}
	return svc, ids
}

func bidder(id int64) models.User {
	return models.User{
		ID:       id,
		Username: fmt.Sprintf("bidder_%d", id),
		FullName: fmt.Sprintf("Bidder %d", id),
		Role:     models.RoleBuyer,
	}
}

// Benchmark_Load_Auctions runs multiple scenarios
func Benchmark_Load_Auctions(b *testing.B) {
	scenarios := []LoadScenario{
		{"Low-Contention-WriteHeavy", 200, 200, 0, 50, false},
		{"High-Contention-WriteHeavy", 500, 10, 0, 20, false},
		{"Mixed-Workload", 300, 50, 7, 30, false},
		{"ReadHeavy", 200, 50, 9, 20, false},
		{"Edge-Case-SingleAuction", 100, 1, 5, 10, false},
		{"Peak-Burst", 500, 50, 0, 20, true},
	}

	for _, s := range scenarios {
		b.Run(s.Name, func(b *testing.B) {
			runParallelScenario(b, s)
		})
	}
}

func runParallelScenario(b *testing.B, s LoadScenario) {
	b.ReportAllocs()

	svc, ids := setupAuctions(b, s.NumAuctions)

	var totalOps, acceptedBids, rejectedBids, totalReads int64
	auctionSuccess := make([]int64, s.NumAuctions)
	metrics := &OperationMetrics{}

	b.ResetTimer()
	start := time.Now()

	b.RunParallel(func(pb *testing.PB) {
		rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

		for pb.Next() {
			idx := rnd.Intn(s.NumAuctions)
			opType := rnd.Intn(10)

			opStart := time.Now()
			if opType < s.ReadRatio {
				if _, err := svc.GetAuction(ids[idx]); err != nil {
					b.Errorf("read auction %d: %v", ids[idx], err)
				}
				atomic.AddInt64(&totalReads, 1)
			} else {
				// blind bids above the start price; stale ones lose the race
				amount := float64(benchStartPrice + (1+rnd.Intn(s.MaxBidIncrement))*1_000)
				who := bidder(int64(1_000 + rnd.Intn(s.NumBidders)))
				if _, err := svc.PlaceBid(ids[idx], who, amount); err != nil {
					atomic.AddInt64(&rejectedBids, 1)
				} else {
					atomic.AddInt64(&acceptedBids, 1)
					atomic.AddInt64(&auctionSuccess[idx], 1)
				}
			}

			metrics.Record(time.Since(opStart))
			atomic.AddInt64(&totalOps, 1)

			if !s.Burst {
				time.Sleep(time.Millisecond)
			}
		}
	})

	elapsed := time.Since(start)
	throughput := float64(totalOps) / elapsed.Seconds()
	min, max, avg, p95, p99 := metrics.Stats()

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	b.Logf(
		"Scenario: %s | Auctions: %d | Total Ops: %d | Accepted Bids: %d | Rejected Bids: %d | Reads: %d | Elapsed: %s | Throughput: %.2f ops/sec | Latency(us) min: %.2f avg: %.2f max: %.2f p95: %.2f p99: %.2f | Memory Alloc: %.2f MB",
		s.Name, s.NumAuctions, totalOps, acceptedBids, rejectedBids, totalReads, elapsed,
		throughput,
		float64(min.Microseconds()), float64(avg.Microseconds()), float64(max.Microseconds()),
		float64(p95.Microseconds()), float64(p99.Microseconds()),
		float64(mem.Alloc)/1024/1024,
	)

	for i, v := range auctionSuccess {
		if v > 0 {
			b.Logf("Auction %d accepted bids: %d", ids[i], v)
		}
	}
}
