package repo

import (
	"context"
	"strings"

	"github.com/algotutor-core/server/internal/agent/model"
)

// StaticKnowledgeRepository serves the structured knowledge table from a fixed
// in-memory slice. Matching is case-insensitive substring over title and
// keywords, first hit wins.
type StaticKnowledgeRepository struct {
	concepts []model.Concept
}

func NewStaticKnowledgeRepository() *StaticKnowledgeRepository {
	return &StaticKnowledgeRepository{concepts: DefaultConcepts}
}

func NewStaticKnowledgeRepositoryWith(concepts []model.Concept) *StaticKnowledgeRepository {
	return &StaticKnowledgeRepository{concepts: concepts}
}

func (r *StaticKnowledgeRepository) LookupConcept(ctx context.Context, concept string) (*model.Concept, error) {
	q := strings.ToLower(strings.TrimSpace(concept))
	if q == "" {
		return nil, nil
	}
	for i := range r.concepts {
		c := &r.concepts[i]
		title := strings.ToLower(c.Title)
		if strings.Contains(title, q) || strings.Contains(q, title) {
			return c, nil
		}
		for _, kw := range c.Keywords {
			if strings.Contains(q, strings.ToLower(kw)) || strings.Contains(strings.ToLower(kw), q) {
				return c, nil
			}
		}
	}
	return nil, nil
}

var _ model.KnowledgeRepository = (*StaticKnowledgeRepository)(nil)

var DefaultConcepts = []model.Concept{
	{
		Title:       "Binary Search Tree",
		Explanation: "A binary search tree (BST) is a binary tree where every node's left subtree contains only keys smaller than the node's key and the right subtree only larger keys. Search, insertion and deletion take O(h) time where h is the tree height: O(log n) when balanced, degrading to O(n) for a degenerate chain. In-order traversal of a BST yields keys in sorted order.",
		Keywords:    []string{"bst", "binary search tree", "search tree"},
	},
	{
		Title:       "Linked List",
		Explanation: "A linked list is a linear collection of nodes where each node holds a value and a pointer to the next node. Unlike arrays, elements are not stored contiguously, so random access costs O(n), but insertion and deletion at a known node are O(1). Doubly linked variants keep a previous pointer as well, enabling O(1) removal given only the node.",
		Keywords:    []string{"linked list", "singly linked", "doubly linked"},
	},
	{
		Title:       "Big-O Notation",
		Explanation: "Big-O notation describes an upper bound on how an algorithm's running time or memory grows with input size n, ignoring constant factors and lower-order terms. Common classes in increasing order of growth: O(1), O(log n), O(n), O(n log n), O(n^2), O(2^n). It characterizes asymptotic worst-case behavior, not actual wall-clock time.",
		Keywords:    []string{"big-o", "big o", "time complexity", "asymptotic"},
	},
	{
		Title:       "Hash Table",
		Explanation: "A hash table maps keys to buckets via a hash function, giving expected O(1) lookup, insertion and deletion. Collisions are handled by chaining (a list per bucket) or open addressing (probing for the next free slot). Performance degrades as the load factor rises, so tables resize and rehash when occupancy passes a threshold.",
		Keywords:    []string{"hash table", "hashmap", "hash map", "dictionary"},
	},
	{
		Title:       "Stack",
		Explanation: "A stack is a last-in-first-out (LIFO) collection supporting push and pop in O(1). It underpins function call frames, expression evaluation, undo histories and depth-first traversal. A stack can be implemented over an array or a linked list; overflow occurs when a bounded stack exceeds its capacity.",
		Keywords:    []string{"stack", "lifo"},
	},
	{
		Title:       "Queue",
		Explanation: "A queue is a first-in-first-out (FIFO) collection supporting enqueue at the tail and dequeue at the head in O(1). Queues drive breadth-first search, task scheduling and buffering. Variants include the double-ended deque and the priority queue, which dequeues by priority rather than arrival order.",
		Keywords:    []string{"queue", "fifo", "deque"},
	},
	{
		Title:       "Graph Traversal",
		Explanation: "Graph traversal visits every reachable vertex of a graph. Breadth-first search (BFS) explores level by level using a queue and finds shortest paths in unweighted graphs; depth-first search (DFS) follows one branch to exhaustion using a stack or recursion and underlies cycle detection and topological sorting. Both run in O(V + E).",
		Keywords:    []string{"bfs", "dfs", "breadth-first", "depth-first", "traversal"},
	},
	{
		Title:       "Merge Sort",
		Explanation: "Merge sort is a stable divide-and-conquer sorting algorithm: split the input in half, sort each half recursively, then merge the two sorted halves. It runs in O(n log n) time in every case and needs O(n) auxiliary space, which makes it the usual choice for sorting linked lists and for external sorting of data too large for memory.",
		Keywords:    []string{"merge sort", "mergesort"},
	},
	{
		Title:       "Quick Sort",
		Explanation: "Quick sort partitions the input around a pivot so smaller elements precede it and larger ones follow, then recurses on both sides. Average time is O(n log n) with small constants and in-place partitioning, but a consistently bad pivot degrades it to O(n^2); randomized or median-of-three pivot selection makes that unlikely.",
		Keywords:    []string{"quick sort", "quicksort", "partition"},
	},
	{
		Title:       "Heap",
		Explanation: "A binary heap is a complete binary tree satisfying the heap property: each parent orders before its children (min-heap or max-heap). Stored implicitly in an array, it supports peek in O(1) and insert/extract in O(log n), which makes it the standard backing structure for priority queues and for heapsort.",
		Keywords:    []string{"heap", "priority queue", "binary heap"},
	},
	{
		Title:       "Dynamic Programming",
		Explanation: "Dynamic programming solves problems with overlapping subproblems and optimal substructure by computing each subproblem once and reusing the result, either top-down with memoization or bottom-up with a table. Classic examples include Fibonacci numbers, the knapsack problem, and edit distance.",
		Keywords:    []string{"dynamic programming", "memoization", "dp"},
	},
	{
		Title:       "Trie",
		Explanation: "A trie (prefix tree) stores strings character by character along root-to-node paths, so all keys sharing a prefix share a path. Lookup, insertion and deletion cost O(m) in the key length m, independent of how many keys are stored, which suits autocomplete, spell checking and IP routing tables.",
		Keywords:    []string{"trie", "prefix tree"},
	},
}
