package flow

import (
	log "github.com/sirupsen/logrus"
)

// EdmondsKarp computes the maximum flow from source→sink
// using the Edmonds–Karp algorithm (BFS for shortest augmenting paths).
// Like Dinic, it resets nw first and leaves the residual state for MinCut.
//
// Complexity: O(V · E²)
// Memory:     O(V)
func EdmondsKarp(nw *Network, source, sink int, opts FlowOptions) (maxFlow float64, err error) {
	if err = nw.prepare(source, sink, &opts); err != nil {
		return 0, err
	}
	if source == sink {
		return 0, nil
	}

	via := make([]int, nw.NumVertices()) // arc used to reach each vertex
	for {
		bottle, ok := nw.shortestAugmentingPath(source, sink, via, opts.Epsilon)
		if !ok {
			break
		}
		for v := sink; v != source; v = nw.head[via[v]^1] {
			nw.augment(via[v], bottle)
		}
		maxFlow += bottle
		if opts.Verbose {
			log.WithFields(log.Fields{"pushed": bottle, "total": maxFlow}).Trace("edmonds-karp augmentation")
		}
	}

	return maxFlow, nil
}

// shortestAugmentingPath runs BFS from source, recording the arc into every
// reached vertex in via. It returns the bottleneck of the path to sink.
func (nw *Network) shortestAugmentingPath(source, sink int, via []int, eps float64) (float64, bool) {
	for i := range via {
		via[i] = -1
	}
	queue := []int{source}
	for i := 0; i < len(queue) && via[sink] < 0; i++ {
		u := queue[i]
		for _, a := range nw.adj[u] {
			v := nw.head[a]
			if v == source || via[v] >= 0 || nw.res[a] <= eps {
				continue
			}
			via[v] = a
			queue = append(queue, v)
		}
	}
	if via[sink] < 0 {
		return 0, false
	}

	bottle := Infinity
	for v := sink; v != source; v = nw.head[via[v]^1] {
		if r := nw.res[via[v]]; r < bottle {
			bottle = r
		}
	}

	return bottle, bottle > eps
}
