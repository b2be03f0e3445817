package landing

type Hero struct {
	Headline string
	Tagline  string
	Tip      string
}

type Stage struct {
	Title   string
	Intro   string
	Steps   []string
	Outcome string
}

type Feature struct {
	Title       string
	Description string
}

type Phase struct {
	Title       string
	Description string
}

type FAQ struct {
	Question string
	Answer   string
}

type CallToAction struct {
	Headline string
	Body     string
}

// Content is everything shown on the landing page.
type Content struct {
	Hero       Hero
	Stages     []Stage
	Features   []Feature
	Phases     []Phase
	FAQs       []FAQ
	Invitation CallToAction
}

func DefaultContent() *Content {
	return &Content{
		Hero: Hero{
			Headline: "Welcome to the Future of Accounting with BizGuard AI",
			Tagline:  "Experience an AI accountant that learns, collaborates, and executes tasks through natural voice interactions and an intuitive interface, all while ensuring complete data security and securely handling sensitive information.",
			Tip:      "Enjoy a mobile-friendly experience designed for busy professionals.",
		},
		Stages: []Stage{
			{
				Title: "1. Setup Stage: Mapping Your Business",
				Intro: "Start by sharing a complete overview of your organization. In this stage, you:",
				Steps: []string{
					"Share key details about your teams, business policies, processes, and chart of accounts",
					"Build your knowledge tree that outlines every task the AI needs to learn",
					"Define clear expectations for the AI's role and responsibilities",
				},
				Outcome: "A solid, tailored knowledge base that mirrors your exact operations.",
			},
			{
				Title: "2. Training Stage: Interactive Voice Learning & Validation",
				Intro: "Engage in live training sessions with BizGuard AI:",
				Steps: []string{
					"Participate in interactive voice sessions while sharing your screen",
					"Use dynamic UI support to upload files and track voice chat logs",
					"Answer clarifying questions and validate each session until the AI fully understands",
				},
				Outcome: "A customized, in-depth understanding of your business processes.",
			},
			{
				Title: "3. Ask Stage: Task Assignment & Execution",
				Intro: "Once training is complete, move to active task execution:",
				Steps: []string{
					"Assign tasks using voice commands or simple text messages",
					"Get real-time bookkeeping, compliance monitoring, and actionable insights",
					"Enjoy seamless integration with your existing accounting software",
				},
				Outcome: "A human-like AI that performs tasks accurately and efficiently, reducing manual work.",
			},
		},
		Features: []Feature{
			{"Preloaded Accounting Expertise", "BizGuard AI is equipped with the knowledge of a typical Indian accountant, ensuring it quickly aligns with your operations."},
			{"Comprehensive Setup", "Create a full knowledge tree that defines your business processes, daily operations, projects, and chart of accounts for tailored learning and precise task execution."},
			{"Interactive Training", "Engage in live voice sessions where you explain tasks and validate details via an intuitive UI for deep, accurate understanding of your workflows without disruptions."},
			{"Real-Time Task Execution", "Assign tasks via voice or text and watch the AI execute them with precision: updating books, monitoring compliance, and providing insights in real time."},
			{"Flexible Deployment", "Choose from a cloud-based SaaS solution, an on-premises deployment, or a dedicated offline AI device that scales with your business needs."},
			{"Robust Data Security", "BizGuard AI focuses on complete data security and securely handling sensitive information, ensuring your data is safe within a secure digital vault."},
		},
		Phases: []Phase{
			{"SaaS: AI Accountant Intern", "Start with a risk-free 30-day trial (powered by a $300 AI credit) and evaluate the AI using simulated data. Watch as it learns your daily operations and accounting tasks through interactive voice sessions."},
			{"On-Premises: AI Accountant Employee", "Deploy the AI on your internal server or private cloud. It becomes a dedicated team member managing routine accounting and corporate secretarial tasks while keeping all sensitive data securely on-site."},
			{"AI Device: Portable ZeroNetwork BizGuard AI", "Transition to a standalone, offline device that operates with zero external network connectivity. Once fully integrated, it autonomously delivers precise financial insights and handles sensitive tasks, acting as your personal AI accountant and secretary."},
		},
		FAQs: []FAQ{
			{"What is BizGuard AI?", "BizGuard AI is an interactive, AI-powered accounting agent that learns your business processes through natural voice interactions, collaborates with your team, and executes tasks with precision, all while ensuring complete data security and securely handling sensitive information."},
			{"How does BizGuard AI ensure data security?", "BizGuard AI is focused on complete data security and securely handling sensitive data. It operates on a secure platform that minimizes external connectivity risks, ensuring your critical financial information is processed and stored safely in a digital vault."},
			{"What is the roadmap for BizGuard AI?", "Our roadmap begins by transforming your accounting operations. Initially, the AI is preloaded with essential accounting knowledge and learns your specific workflows during the Setup and Training Stages. Once you gain confidence in its accounting capabilities, we expand BizGuard AI to support other business functions such as sales, customer support, manufacturing, procurement, and market research."},
			{"What return on investment (ROI) can I expect?", "By automating routine tasks and reducing manual errors, BizGuard AI significantly improves efficiency and speeds up financial reporting, resulting in immediate cost savings. As you extend its functionality across multiple departments, you'll experience further operational improvements, reduced labor costs, and enhanced decision-making."},
			{"How does BizGuard AI integrate with my existing systems?", "BizGuard AI seamlessly integrates with your current accounting software, ERP systems, shared drives, and document repositories, ensuring a smooth flow of data and enhanced operational efficiency while maintaining robust data protection."},
			{"Can BizGuard AI be customized to suit my business needs?", "Yes. During the Setup Stage, you build a comprehensive knowledge tree that maps out your business processes, policies, daily operations, and chart of accounts. This customization ensures that BizGuard AI learns and performs tasks tailored precisely to your organization."},
			{"What support and training do you offer during implementation?", "We provide extensive support throughout the Setup and Training Stages, including interactive voice sessions, dynamic UI assistance, and ongoing technical support. Our goal is to ensure a smooth transition and rapid adoption of BizGuard AI."},
			{"What future enhancements can I expect?", "Once the accounting module is fully operational, we will expand BizGuard AI's capabilities to include modules for sales, customer support, manufacturing, procurement, and market research."},
		},
		Invitation: CallToAction{
			Headline: "Ready to Revolutionize Your Accounting Operations?",
			Body:     "Join our exclusive waitlist today to receive updates and be the first to experience the future of accounting with BizGuard AI.",
		},
	}
}
