package matching

import (
	"github.com/korpsdata/streamlink/core"
)

// AcceptThreshold is the minimum combined score at which a track is accepted
// as the recording of a performance. Empirically tuned alongside the
// relevance weights.
const AcceptThreshold = 0.65

// Artist-evidence blending. A strong artist match is near-conclusive even
// when the piece title differs due to arrangement or transcription naming; a
// weak artist signal must not drown out piece-title evidence.
const (
	cStrongArtistFloor  = 0.7
	cWeakArtistFloor    = 0.4
	cStrongPieceWeight  = 0.6
	cStrongArtistWeight = 0.4
	cWeakPieceWeight    = 0.8
	cWeakArtistWeight   = 0.2
)

// BestTrack selects the candidate track with the highest combined
// piece+artist score, or nil when no candidate reaches AcceptThreshold.
// pieceSlugs holds the normalized piece title plus any alternate slugs;
// bandSlug is the normalized performing band name. Ties resolve to the first
// candidate encountered, so selection is stable with respect to collection
// order. The returned track is a copy with MatchScore filled in.
func BestTrack(pieceSlugs []string, bandSlug string, tracks []core.Track) *core.Track {
	var best *core.Track
	bestScore := 0.0

	for i := range tracks {
		track := &tracks[i]
		combined := CombinedScore(pieceSlugs, bandSlug, track)
		if combined > bestScore {
			bestScore = combined
			best = track
		}
	}

	if best == nil || bestScore < AcceptThreshold {
		return nil
	}
	accepted := *best
	accepted.MatchScore = bestScore
	return &accepted
}

// CombinedScore blends piece-title similarity with band/artist similarity
// for one candidate track.
func CombinedScore(pieceSlugs []string, bandSlug string, track *core.Track) float64 {
	pieceScore := 0.0
	for _, variant := range track.SlugVariants {
		for _, pieceSlug := range pieceSlugs {
			if score := SimilarityScore(pieceSlug, variant); score > pieceScore {
				pieceScore = score
			}
		}
	}

	bandScore := 0.0
	if artistSlug := Slugify(track.Artist); artistSlug != "" {
		bandScore = SimilarityScore(bandSlug, artistSlug)
	}

	switch {
	case bandScore > cStrongArtistFloor:
		return cStrongPieceWeight*pieceScore + cStrongArtistWeight*bandScore
	case bandScore > cWeakArtistFloor:
		return cWeakPieceWeight*pieceScore + cWeakArtistWeight*bandScore
	default:
		return pieceScore
	}
}
