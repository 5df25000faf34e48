// Package aggregate computes language tags for media items and folds them up
// the library hierarchy.
//
// A pass builds explicit trees (series → season → episode, collection →
// movie, or a lone movie) and folds each one bottom-up. Leaves are video
// items whose languages come from ffmpeg and sidecar files; containers carry
// the union of their children's languages. Every node writes its own tags
// before handing its Contribution to the parent, so a cancelled pass leaves
// each finished subtree fully tagged.
//
// A leaf reachable from more than one root (a movie that also belongs to one
// or more collections) is processed once per pass; later visits reuse the
// memoized Contribution.
package aggregate
