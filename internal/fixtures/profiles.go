// Package fixtures generates deterministic synthetic profiles for tests and demos.
package fixtures

import (
	"fmt"
	"math/rand"
	"profile-lab/domain"
)

var (
	realBios = []string{
		"Coffee lover and amateur photographer",
		"Running marathons and writing about travel",
		"Designer at a small studio, cats and books",
		"Father of two, weekend hiker",
		"Music teacher sharing my piano practice",
		"",
	}
	fakeBios = []string{
		"Free giveaway for followers, dm for collab",
		"Promo ambassador linkinbio free followers",
		"Best promo here, join telegram t.me/deals",
		"Get free followers now giveaway",
		"onlyfans promo dm for collab",
	}
	realNames = []string{"anna", "marco", "julie", "tom", "sarah", "leo", "nina", "paul"}
	fakeNames = []string{"free_promo", "official_shop", "buy_store", "promo_link", "free_service"}
)

// Bios lists every bio the generators pick from, real ones first.
func Bios() []string {
	bios := make([]string, 0, len(realBios)+len(fakeBios))
	return append(append(bios, realBios...), fakeBios...)
}

// Real builds a plausible genuine profile.
func Real(rng *rand.Rand) domain.ProfileRecord {
	return domain.ProfileRecord{
		Username:          realNames[rng.Intn(len(realNames))] + fmt.Sprint(rng.Intn(10)),
		Bio:               realBios[rng.Intn(len(realBios))],
		IsVerified:        rng.Intn(10) == 0,
		FollowersCount:    int64(200 + rng.Intn(5000)),
		FollowingCount:    int64(100 + rng.Intn(800)),
		PostsCount:        int64(20 + rng.Intn(400)),
		HasProfilePic:     true,
		IsBusinessAccount: rng.Intn(5) == 0,
		HasBioLinks:       rng.Intn(3) == 0,
		AccountLabel:      domain.AccountReal,
	}
}

// Fake builds a profile carrying the usual spam signals.
func Fake(rng *rand.Rand) domain.ProfileRecord {
	return domain.ProfileRecord{
		Username:       fmt.Sprintf("%s_%d", fakeNames[rng.Intn(len(fakeNames))], 100+rng.Intn(900)),
		Bio:            fakeBios[rng.Intn(len(fakeBios))],
		FollowersCount: int64(rng.Intn(50)),
		FollowingCount: int64(1000 + rng.Intn(6000)),
		PostsCount:     int64(rng.Intn(5)),
		HasProfilePic:  rng.Intn(4) == 0,
		HasBioLinks:    true,
		AccountLabel:   domain.AccountFake,
	}
}

// Corpus returns real real profiles followed by fake fake ones, always the same for a seed.
func Corpus(seed int64, real, fake int) []domain.ProfileRecord {
	rng := rand.New(rand.NewSource(seed))
	records := make([]domain.ProfileRecord, 0, real+fake)
	for i := 0; i < real; i++ {
		records = append(records, Real(rng))
	}
	for i := 0; i < fake; i++ {
		records = append(records, Fake(rng))
	}
	return records
}

// Raw renders a record in the flat scraped shape, as the ingestion boundary expects it.
func Raw(r domain.ProfileRecord) map[string]any {
	raw := map[string]any{
		"username":            r.Username,
		"bio":                 r.Bio,
		"is_verified":         r.IsVerified,
		"followers_count":     r.FollowersCount,
		"following_count":     r.FollowingCount,
		"media_count":         r.PostsCount,
		"is_business_account": r.IsBusinessAccount,
		"account_label":       string(r.AccountLabel),
	}
	if r.HasProfilePic {
		raw["profile_pic_url"] = "https://cdn.example.com/" + r.Username + ".jpg"
	}
	if r.HasBioLinks {
		raw["bio_links"] = []any{map[string]any{"url": "https://example.com/" + r.Username}}
	}
	return raw
}
