package graph

import "slices"

// ShortestPath ищет кратчайший по числу рёбер путь обходом в ширину.
// Соседи перебираются в лексическом порядке, поэтому среди равных путей
// результат детерминирован. Пустой результат: таблиц нет или путь не найден.
func (g *Graph) ShortestPath(start, end string) []string {
	if !g.Has(start) || !g.Has(end) {
		return nil
	}

	queue := [][]string{{start}}
	visited := map[string]bool{start: true}

	for len(queue) > 0 {
		path := queue[0]
		queue = queue[1:]

		node := path[len(path)-1]
		if node == end {
			return path
		}

		for _, next := range g.Neighbors(node) {
			if visited[next] {
				continue
			}
			visited[next] = true
			queue = append(queue, append(slices.Clone(path), next))
		}
	}
	return nil
}

// ReachableFrom возвращает все достижимые из seed таблицы, кроме самой seed, в порядке обхода
func (g *Graph) ReachableFrom(seed string) []string {
	if !g.Has(seed) {
		return nil
	}
	reached := g.bfs([]string{seed})
	return reached[1:]
}

// ReachableFromSet обход сразу из всех seeds; результат включает seeds из графа
func (g *Graph) ReachableFromSet(seeds []string) []string {
	var present []string
	for _, s := range seeds {
		if g.Has(s) && !slices.Contains(present, s) {
			present = append(present, s)
		}
	}
	return g.bfs(present)
}

// MinimalConnectingSet объединяет seeds с таблицами на кратчайших путях
// между каждой парой seeds. Жадное приближение дерева Штейнера.
func (g *Graph) MinimalConnectingSet(seeds []string) []string {
	if len(seeds) <= 1 {
		return slices.Clone(seeds)
	}

	result := slices.Clone(seeds)
	for i := 0; i < len(seeds); i++ {
		for j := i + 1; j < len(seeds); j++ {
			for _, table := range g.ShortestPath(seeds[i], seeds[j]) {
				if !slices.Contains(result, table) {
					result = append(result, table)
				}
			}
		}
	}
	return result
}

func (g *Graph) bfs(seeds []string) []string {
	visited := make(map[string]bool, len(seeds))
	order := make([]string, 0, len(seeds))
	queue := make([]string, 0, len(seeds))
	for _, s := range seeds {
		visited[s] = true
		order = append(order, s)
		queue = append(queue, s)
	}

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		for _, next := range g.Neighbors(node) {
			if visited[next] {
				continue
			}
			visited[next] = true
			order = append(order, next)
			queue = append(queue, next)
		}
	}
	return order
}
