package diagnosis

import (
	"sort"
	"strings"

	"github.com/maomaoaichibing/portfolio-advisor/internal/models"
)

// sectorTopShareLimit is the exclusive value share above which the top
// sector is considered a high sector risk.
const sectorTopShareLimit = 0.5

// balancedSectorMin is the minimum distinct sector count for a balanced
// portfolio.
const balancedSectorMin = 3

// sectorPrefixes maps A-share symbol prefixes to board names, longest
// prefix first. Symbols matching no prefix fall into "Other".
var sectorPrefixes = []struct {
	prefix string
	sector string
}{
	{"688", "STAR Market"},
	{"605", "Shanghai Main Board"},
	{"603", "Shanghai Main Board"},
	{"601", "Shanghai Main Board"},
	{"600", "Shanghai Main Board"},
	{"301", "ChiNext"},
	{"300", "ChiNext"},
	{"003", "SME Board"},
	{"002", "SME Board"},
	{"001", "Shenzhen Main Board"},
	{"000", "Shenzhen Main Board"},
	{"92", "Beijing Stock Exchange"},
	{"87", "Beijing Stock Exchange"},
	{"83", "Beijing Stock Exchange"},
	{"43", "Beijing Stock Exchange"},
}

// sectorFor maps a symbol to its board name by prefix
func sectorFor(symbol string) string {
	for _, entry := range sectorPrefixes {
		if strings.HasPrefix(symbol, entry.prefix) {
			return entry.sector
		}
	}
	return "Other"
}

// analyzeSectors buckets holdings by symbol prefix and flags a single
// sector dominating portfolio value.
func (s *Service) analyzeSectors(snap *models.PortfolioSnapshot) *models.SectorReport {
	buckets := make(map[string]*models.SectorBucket)

	for _, h := range snap.Holdings {
		sector := sectorFor(h.Symbol)
		bucket, ok := buckets[sector]
		if !ok {
			bucket = &models.SectorBucket{Sector: sector}
			buckets[sector] = bucket
		}
		bucket.Count++
		bucket.Value += h.MarketValue()
		bucket.Members = append(bucket.Members, h.Symbol)
	}

	sectors := make([]models.SectorBucket, 0, len(buckets))
	for _, b := range buckets {
		sectors = append(sectors, *b)
	}
	// Value descending, name ascending on ties, for deterministic output
	sort.SliceStable(sectors, func(i, j int) bool {
		if sectors[i].Value != sectors[j].Value {
			return sectors[i].Value > sectors[j].Value
		}
		return sectors[i].Sector < sectors[j].Sector
	})

	top := sectors[0]
	sectorRisk := models.RiskBandLow
	if snap.TotalValue > 0 && top.Value/snap.TotalValue > sectorTopShareLimit {
		sectorRisk = models.RiskBandHigh
	}

	return &models.SectorReport{
		Sectors:    sectors,
		TopSector:  top.Sector,
		SectorRisk: sectorRisk,
		IsBalanced: len(sectors) >= balancedSectorMin,
	}
}
