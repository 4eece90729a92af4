package systems

import (
	"container/heap"

	"arena-server/internal/domain"
)

// pathNode - запись в открытом списке A*
type pathNode struct {
	tile domain.TileCoord
	f    int
	g    int
	idx  int
}

// openList - приоритетная очередь для A*.
// Порядок: меньший f, при равенстве меньший X, затем меньший Y.
// Детерминированный порядок обхода нужен для воспроизводимости симуляции.
type openList []*pathNode

func (ol openList) Len() int { return len(ol) }

func (ol openList) Less(i, j int) bool {
	if ol[i].f != ol[j].f {
		return ol[i].f < ol[j].f
	}
	if ol[i].tile.X != ol[j].tile.X {
		return ol[i].tile.X < ol[j].tile.X
	}
	return ol[i].tile.Y < ol[j].tile.Y
}

func (ol openList) Swap(i, j int) {
	ol[i], ol[j] = ol[j], ol[i]
	ol[i].idx = i
	ol[j].idx = j
}

func (ol *openList) Push(x interface{}) {
	n := x.(*pathNode)
	n.idx = len(*ol)
	*ol = append(*ol, n)
}

func (ol *openList) Pop() interface{} {
	old := *ol
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	*ol = old[:n-1]
	return node
}

const (
	costCardinal = 10
	costDiagonal = 14
)

// heuristic - манхэттенское расстояние в тех же единицах, что и стоимость шага
func heuristic(a, b domain.TileCoord) int {
	return a.ManhattanTo(b) * costCardinal
}

// octileHeuristic - допустимая эвристика для восьмисвязного графа
func octileHeuristic(a, b domain.TileCoord) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	if dx < dy {
		dx, dy = dy, dx
	}
	return costCardinal*(dx-dy) + costDiagonal*dy
}

// FindPath ищет кратчайший путь по навграфу алгоритмом A*.
// Возвращает последовательность тайлов от start до goal включительно,
// либо nil, если путь не существует. FindPath(a, a) возвращает [a].
// Недостижимые или непроходимые конечные точки дают nil.
func FindPath(ng *NavGraph, start, goal domain.TileCoord) []domain.TileCoord {
	if !ng.Contains(start) || !ng.Contains(goal) {
		return nil
	}
	if start == goal {
		return []domain.TileCoord{start}
	}

	h := heuristic
	if ng.Diagonal {
		h = octileHeuristic
	}

	gScore := map[domain.TileCoord]int{start: 0}
	cameFrom := make(map[domain.TileCoord]domain.TileCoord)
	closed := make(map[domain.TileCoord]bool)

	open := &openList{}
	heap.Init(open)
	heap.Push(open, &pathNode{tile: start, g: 0, f: h(start, goal)})

	for open.Len() > 0 {
		cur := heap.Pop(open).(*pathNode)

		// Устаревшая запись: к тайлу уже нашли более дешёвый путь
		if best, ok := gScore[cur.tile]; ok && cur.g > best {
			continue
		}
		if closed[cur.tile] {
			continue
		}
		closed[cur.tile] = true

		if cur.tile == goal {
			return reconstructPath(cameFrom, goal)
		}

		for _, next := range ng.Nodes[cur.tile] {
			if closed[next] {
				continue
			}

			step := costCardinal
			if next.X != cur.tile.X && next.Y != cur.tile.Y {
				step = costDiagonal
			}
			tentative := cur.g + step

			if best, ok := gScore[next]; ok && tentative >= best {
				continue
			}

			gScore[next] = tentative
			cameFrom[next] = cur.tile
			heap.Push(open, &pathNode{
				tile: next,
				g:    tentative,
				f:    tentative + h(next, goal),
			})
		}
	}

	return nil
}

func reconstructPath(cameFrom map[domain.TileCoord]domain.TileCoord, goal domain.TileCoord) []domain.TileCoord {
	path := []domain.TileCoord{goal}
	cur := goal
	for {
		prev, ok := cameFrom[cur]
		if !ok {
			break
		}
		path = append(path, prev)
		cur = prev
	}
	// Разворот: путь собран от цели к старту
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// PathLength возвращает число шагов пути между тайлами, либо -1,
// если путь не существует. Используется восприятием для оценки
// удалённости зон.
func PathLength(ng *NavGraph, start, goal domain.TileCoord) int {
	path := FindPath(ng, start, goal)
	if path == nil {
		return -1
	}
	return len(path) - 1
}
