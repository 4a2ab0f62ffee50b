package flow

import (
	log "github.com/sirupsen/logrus"
)

// Dinic computes the maximum flow from source to sink in nw using Dinic’s
// algorithm (level graph + blocking flows). Any flow from a previous run is
// discarded first; the residual state is left in nw for MinCut.
//
// Steps:
//  1. Normalize options, validate endpoints and capacities.
//  2. Repeat until the sink is unreachable:
//     a. BFS to build the level graph over arcs with residual > Epsilon.
//     b. DFS-based blocking flow pushes until none remains,
//     optionally rebuilding the level graph every LevelRebuildInterval augmentations.
//
// Complexity:
//
//	Time:   O(V² · E) in general; O(E · √V) on unit-capacity networks.
//	Memory: O(V) besides the arena.
func Dinic(nw *Network, source, sink int, opts FlowOptions) (maxFlow float64, err error) {
	if err = nw.prepare(source, sink, &opts); err != nil {
		return 0, err
	}
	if source == sink {
		return 0, nil
	}

	n := nw.NumVertices()
	level := make([]int, n)
	iter := make([]int, n)
	augmentCount := 0
	for {
		nw.levels(source, level, opts.Epsilon)
		if level[sink] < 0 {
			break
		}
		for i := range iter {
			iter[i] = 0
		}
		for {
			pushed := nw.dfsPush(source, sink, Infinity, level, iter, opts.Epsilon)
			if pushed <= opts.Epsilon {
				break
			}
			maxFlow += pushed
			augmentCount++
			if opts.Verbose {
				log.WithFields(log.Fields{"pushed": pushed, "total": maxFlow}).Trace("dinic augmentation")
			}
			if opts.LevelRebuildInterval > 0 && augmentCount%opts.LevelRebuildInterval == 0 {
				break
			}
		}
	}

	return maxFlow, nil
}

// levels fills level with BFS distances from source over usable arcs (-1 when
// unreachable).
func (nw *Network) levels(source int, level []int, eps float64) {
	for i := range level {
		level[i] = -1
	}
	level[source] = 0
	queue := []int{source}
	for i := 0; i < len(queue); i++ {
		u := queue[i]
		for _, a := range nw.adj[u] {
			v := nw.head[a]
			if nw.res[a] > eps && level[v] < 0 {
				level[v] = level[u] + 1
				queue = append(queue, v)
			}
		}
	}
}

// dfsPush sends up to available units from u toward sink along the level graph
// and returns the amount actually sent.
func (nw *Network) dfsPush(u, sink int, available float64, level, iter []int, eps float64) float64 {
	if u == sink {
		return available
	}
	for ; iter[u] < len(nw.adj[u]); iter[u]++ {
		a := nw.adj[u][iter[u]]
		v := nw.head[a]
		if nw.res[a] <= eps || level[v] != level[u]+1 {
			continue
		}
		send := available
		if nw.res[a] < send {
			send = nw.res[a]
		}
		if pushed := nw.dfsPush(v, sink, send, level, iter, eps); pushed > eps {
			nw.augment(a, pushed)

			return pushed
		}
	}

	return 0
}
