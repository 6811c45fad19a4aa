// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"time"

	"github.com/jeranaias/docchat/internal/model"
)

// seedMessage is a message stamped relative to its conversation's start.
type seedMessage struct {
	role   model.Role
	offset time.Duration
	text   string
	meta   *model.Metadata
}

type seedConversation struct {
	id          string
	title       string
	lastMessage string
	age         time.Duration
	messages    []seedMessage
}

const (
	minute = time.Minute
	hour   = time.Hour
	day    = 24 * time.Hour
	ms     = time.Millisecond
)

func user(offset time.Duration, text string) seedMessage {
	return seedMessage{role: model.RoleUser, offset: offset, text: text}
}

func assistant(offset time.Duration, text string, meta ...*model.Metadata) seedMessage {
	m := seedMessage{role: model.RoleAssistant, offset: offset, text: text}
	if len(meta) > 0 {
		m.meta = meta[0]
	}
	return m
}

// SeedConversations returns the built-in conversations shown before anything
// has been saved. Timestamps are relative to now. Titles and previews are
// curated; MessageCount always matches the message list.
func SeedConversations(now time.Time) []model.Conversation {
	out := make([]model.Conversation, 0, len(seedData))
	for _, sc := range seedData {
		start := now.Add(-sc.age)
		msgs := make([]model.Message, len(sc.messages))
		for i, sm := range sc.messages {
			var meta *model.Metadata
			if sm.meta != nil {
				c := sm.meta.Clone()
				meta = &c
			}
			msgs[i] = model.Message{
				Role:      sm.role,
				Content:   sm.text,
				Timestamp: start.Add(sm.offset),
				Metadata:  meta,
			}
		}
		out = append(out, model.Conversation{
			ID:           sc.id,
			Title:        sc.title,
			LastMessage:  sc.lastMessage,
			Timestamp:    start,
			MessageCount: len(msgs),
			Messages:     msgs,
		})
	}
	return out
}

// seedByID indexes the seed collection.
func seedByID(now time.Time) map[string]model.Conversation {
	seeds := SeedConversations(now)
	m := make(map[string]model.Conversation, len(seeds))
	for _, c := range seeds {
		m[c.ID] = c
	}
	return m
}

// =============================================================================
// SEED DATA
// =============================================================================

var seedData = []seedConversation{
	{
		id:          "conv-1",
		title:       "How to implement authentication in React?",
		lastMessage: "You can use Firebase Authentication or implement a custom JWT-based solution. Firebase provides easy integration with multiple providers...",
		age:         30 * minute,
		messages: []seedMessage{
			user(0, "How to implement authentication in React?"),
			assistant(2000*ms, "You can use Firebase Authentication or implement a custom JWT-based solution. Firebase provides easy integration with multiple providers like Google, GitHub, and email/password."),
			user(5000*ms, "What are the advantages of using Firebase?"),
			assistant(7000*ms, "Firebase Authentication offers several advantages: built-in security, multiple provider support, easy integration, and automatic token management. It also provides MFA support out of the box."),
			user(10000*ms, "How do I set up JWT authentication manually?"),
			assistant(12000*ms, "For JWT authentication, you'll need to: 1) Create a backend API that validates credentials, 2) Generate JWT tokens upon successful login, 3) Store tokens securely (httpOnly cookies or localStorage), 4) Include tokens in API requests via headers, 5) Validate tokens on protected routes."),
			user(15000*ms, "Which approach is better for production?"),
			assistant(17000*ms, "For production, Firebase is better if you want quick setup and don't need custom auth logic. Custom JWT is better if you need full control, specific security requirements, or want to avoid vendor lock-in. Consider your team's expertise and project requirements."),
		},
	},
	{
		id:          "conv-2",
		title:       "Best practices for RAG implementation",
		lastMessage: "For RAG (Retrieval Augmented Generation), you should focus on chunking strategies, embedding models, and vector database selection...",
		age:         2 * hour,
		messages: []seedMessage{
			user(0, "Best practices for RAG implementation"),
			assistant(2000*ms, "For RAG (Retrieval Augmented Generation), you should focus on chunking strategies, embedding models, and vector database selection. Start with semantic chunking for better context preservation."),
			user(5000*ms, "What chunking strategy should I use?"),
			assistant(7000*ms, "Use semantic chunking for documents with clear sections, fixed-size chunks with overlap for uniform content, or hybrid approaches. The key is maintaining context while keeping chunks manageable (typically 200-500 tokens)."),
			user(10000*ms, "Which embedding model is recommended?"),
			assistant(12000*ms, "For general use, OpenAI's text-embedding-ada-002 or Cohere's embed models work well. For domain-specific content, consider fine-tuned models. Sentence transformers like all-MiniLM-L6-v2 are good open-source alternatives."),
		},
	},
	{
		id:          "conv-3",
		title:       "Setting up data sources for document processing",
		lastMessage: "To set up data sources, navigate to the Data Sources section and configure your Google Drive, GCS Bucket, or Web Crawler connections...",
		age:         5 * hour,
		messages: []seedMessage{
			user(0, "Setting up data sources for document processing"),
			assistant(2000*ms, "To set up data sources, navigate to the Data Sources section and configure your Google Drive, GCS Bucket, or Web Crawler connections. Each source type has specific authentication requirements."),
			user(5000*ms, "How do I connect Google Drive?"),
			assistant(7000*ms, "For Google Drive: 1) Enable Google Drive API in your project, 2) Create OAuth credentials, 3) Request appropriate scopes (drive.readonly), 4) Implement OAuth flow, 5) Use Drive API to list and download files."),
		},
	},
	{
		id:          "conv-4",
		title:       "Understanding vector embeddings and similarity search",
		lastMessage: "Vector embeddings convert text into numerical representations in high-dimensional space. Similarity search uses cosine similarity or Euclidean distance...",
		age:         24 * hour,
		messages: []seedMessage{
			user(0, "Understanding vector embeddings and similarity search"),
			assistant(2000*ms, "Vector embeddings convert text into numerical representations in high-dimensional space. Similarity search uses cosine similarity or Euclidean distance to find related content."),
		},
	},
	{
		id:          "conv-5",
		title:       "How to optimize document chunking for better retrieval?",
		lastMessage: "Optimal chunking depends on your document type. For technical docs, use semantic chunking. For structured data, consider fixed-size chunks with overlap...",
		age:         2 * day,
		messages: []seedMessage{
			user(0, "How to optimize document chunking for better retrieval?"),
			assistant(2000*ms, "Optimal chunking depends on your document type. For technical docs, use semantic chunking. For structured data, consider fixed-size chunks with overlap."),
		},
	},
	{
		id:          "conv-6",
		title:       "Configuring MFA for enhanced security",
		lastMessage: "Multi-factor authentication adds an extra layer of security. You can enable it in the Settings section under Account Security...",
		age:         3 * day,
		messages: []seedMessage{
			user(0, "Configuring MFA for enhanced security"),
			assistant(2000*ms, "Multi-factor authentication adds an extra layer of security. You can enable it in the Settings section under Account Security."),
		},
	},
	{
		id:          "conv-7",
		title:       "API rate limiting and error handling strategies",
		lastMessage: "Implement exponential backoff for retries, use circuit breakers for failing services, and set appropriate rate limits based on your use case...",
		age:         5 * day,
		messages: []seedMessage{
			user(0, "API rate limiting and error handling strategies"),
			assistant(2000*ms, "Implement exponential backoff for retries, use circuit breakers for failing services, and set appropriate rate limits based on your use case."),
		},
	},
	{
		id:          "conv-8",
		title:       "What are the key features of React 18?",
		lastMessage: "React 18 introduces several key features including Concurrent Rendering, Automatic Batching, Suspense Improvements...",
		age:         6 * day,
		messages: []seedMessage{
			user(0, "What are the key features of React 18?"),
			assistant(3000*ms,
				"React 18 introduces several key features including:\n\n"+
					"1. **Concurrent Rendering** - Allows React to interrupt rendering work to handle higher priority updates\n"+
					"2. **Automatic Batching** - Groups multiple state updates into a single re-render\n"+
					"3. **Suspense Improvements** - Better support for data fetching and code splitting\n"+
					"4. **New Hooks** - useId, useTransition, useDeferredValue, and useSyncExternalStore\n"+
					"5. **Strict Mode Updates** - Enhanced development warnings and double-invocation of effects",
				&model.Metadata{
					Sources: []string{
						"react-18-release-notes.pdf",
						"react-docs/concurrent-features.md",
						"tech-blog/react-18-overview.docx",
					},
					Agent: "RAG Search Agent",
				}),
		},
	},
	{
		id:          "conv-9",
		title:       "Explain how to implement authentication with JWT tokens",
		lastMessage: "JWT (JSON Web Token) authentication involves several steps: User Login, Token Generation, Token Storage...",
		age:         7 * day,
		messages: []seedMessage{
			user(0, "Explain how to implement authentication with JWT tokens"),
			assistant(4000*ms,
				"JWT (JSON Web Token) authentication involves several steps:\n\n"+
					"1. **User Login**: Client sends credentials to server\n"+
					"2. **Token Generation**: Server validates credentials and generates JWT with user info\n"+
					"3. **Token Storage**: Client stores token (localStorage, sessionStorage, or httpOnly cookie)\n"+
					"4. **Token Transmission**: Client includes token in Authorization header for protected routes\n"+
					"5. **Token Validation**: Server validates token signature and expiration on each request\n\n"+
					"Best practices include using short expiration times, refresh tokens, and secure storage methods.",
				&model.Metadata{
					Sources: []string{
						"auth-guide/jwt-implementation.pdf",
						"security-best-practices.md",
					},
					Agent: "RAG Search Agent",
				}),
		},
	},
	{
		id:          "conv-10",
		title:       "What are the best practices for database indexing?",
		lastMessage: "Database indexing best practices include: Index Frequently Queried Columns, Avoid Over-Indexing...",
		age:         8 * day,
		messages: []seedMessage{
			user(0, "What are the best practices for database indexing?"),
			assistant(5000*ms,
				"Database indexing best practices include:\n\n"+
					"1. **Index Frequently Queried Columns** - Add indexes on columns used in WHERE, JOIN, and ORDER BY clauses\n"+
					"2. **Avoid Over-Indexing** - Too many indexes slow down INSERT/UPDATE operations\n"+
					"3. **Composite Indexes** - Use for queries filtering multiple columns\n"+
					"4. **Monitor Index Usage** - Remove unused indexes to improve write performance\n"+
					"5. **Consider Index Type** - Choose B-tree, hash, or full-text indexes based on query patterns",
				&model.Metadata{
					Sources: []string{
						"database-optimization-guide.pdf",
						"example.xlsx",
						"indexing-strategies.docx",
					},
					Agent: "RAG Search Agent",
					AgentThoughts: []model.AgentThought{
						{
							Agent:    "Filter Agent",
							Thought:  "Query is about database indexing best practices. Filtering out irrelevant context.",
							PassedTo: "Search Agent",
						},
						{
							Agent:    "Search Agent",
							Thought:  "Found 3 relevant documents about database indexing. Extracting key information.",
							PassedTo: "Critic Agent",
						},
						{
							Agent:   "Critic Agent",
							Thought: "Verified response accuracy against source documents. All information is correct and well-structured.",
						},
					},
				}),
		},
	},
	{
		id:          "conv-11",
		title:       "Compare different AI models for our use case",
		lastMessage: "Here's a comparison of popular AI models for different use cases...",
		age:         9 * day,
		messages: []seedMessage{
			user(0, "Compare different AI models for our use case"),
			assistant(5000*ms,
				"Here's a comparison of popular AI models for different use cases:\n\n"+
					"| Model | Provider | Best For | Cost | Speed |\n"+
					"|-------|----------|----------|------|-------|\n"+
					"| GPT-4o | OpenAI | General purpose, complex reasoning | High | Fast |\n"+
					"| GPT-4 Turbo | OpenAI | Large context windows, detailed analysis | Medium | Very Fast |\n"+
					"| Claude 3.5 Sonnet | Anthropic | Long documents, ethical AI | Medium | Medium |\n"+
					"| Claude 3 Opus | Anthropic | Most capable, complex tasks | High | Slow |\n"+
					"| Gemini Pro | Google | Multimodal, cost-effective | Low | Fast |\n"+
					"| GPT-3.5 Turbo | OpenAI | Simple tasks, cost-effective | Low | Very Fast |\n\n"+
					"For most business applications, GPT-4 Turbo offers the best balance of capability and speed. For cost-sensitive projects, GPT-3.5 Turbo or Gemini Pro are excellent choices.",
				&model.Metadata{
					Sources: []string{
						"ai-models-comparison.pdf",
						"model-benchmarks.xlsx",
					},
					Agent: "RAG Search Agent",
					AgentThoughts: []model.AgentThought{
						{
							Agent:    "Filter Agent",
							Thought:  "User wants to compare AI models. Filtering for relevant comparison data.",
							PassedTo: "Search Agent",
						},
						{
							Agent:    "Search Agent",
							Thought:  "Found comparison documents. Extracting model specifications and creating structured table.",
							PassedTo: "Critic Agent",
						},
						{
							Agent:   "Critic Agent",
							Thought: "Verified table accuracy and formatting. All model information is up-to-date and correctly presented.",
						},
					},
				}),
		},
	},
}
