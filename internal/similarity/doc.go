// Package similarity scores display names and selects each card's nearest
// peers.
//
// Ratio is the classic sequence-matcher ratio: matching blocks are found
// greedily from the longest common substring outward and the score is
// 2*M/(len(a)+len(b)) over Unicode code points. Ranker applies the threshold,
// orders candidates by descending score with ties broken by ascending
// identifier, and truncates to the top N.
package similarity
