package taxonomy

// builtinSkills is the bootstrap skill table covering common technology
// skills. It can be replaced wholesale with O*NET or ESCO data later.
var builtinSkills = []SkillDefinition{
	// Programming languages
	{Name: "JavaScript", Category: CategoryTechnical, Aliases: []string{"JS", "ECMAScript", "ES6"}, RelatedSkills: []string{"TypeScript", "Node.js", "React"}},
	{Name: "TypeScript", Category: CategoryTechnical, Aliases: []string{"TS"}, RelatedSkills: []string{"JavaScript", "Node.js", "React"}},
	{Name: "Python", Category: CategoryTechnical, Aliases: []string{"Python3", "Py"}, RelatedSkills: []string{"Django", "Flask", "FastAPI"}},
	{Name: "Java", Category: CategoryTechnical, Aliases: []string{"Java8", "Java11", "Java17"}, RelatedSkills: []string{"Spring", "Maven", "Gradle"}},
	{Name: "C#", Category: CategoryTechnical, Aliases: []string{"CSharp", "C Sharp", ".NET"}, RelatedSkills: []string{".NET", "ASP.NET"}},
	{Name: "Go", Category: CategoryTechnical, Aliases: []string{"Golang"}, RelatedSkills: []string{"Kubernetes", "Docker"}},
	{Name: "Rust", Category: CategoryTechnical, RelatedSkills: []string{"WebAssembly", "Systems Programming"}},
	{Name: "Ruby", Category: CategoryTechnical, RelatedSkills: []string{"Rails", "Ruby on Rails"}},
	{Name: "PHP", Category: CategoryTechnical, RelatedSkills: []string{"Laravel", "WordPress"}},
	{Name: "Swift", Category: CategoryTechnical, RelatedSkills: []string{"iOS", "Xcode"}},
	{Name: "Kotlin", Category: CategoryTechnical, RelatedSkills: []string{"Android", "JVM"}},
	{Name: "SQL", Category: CategoryTechnical, Aliases: []string{"Structured Query Language"}, RelatedSkills: []string{"PostgreSQL", "MySQL", "Database"}},

	// Frontend frameworks
	{Name: "React", Category: CategoryTechnical, Aliases: []string{"React.js", "ReactJS"}, RelatedSkills: []string{"JavaScript", "TypeScript", "Next.js"}},
	{Name: "Vue", Category: CategoryTechnical, Aliases: []string{"Vue.js", "VueJS"}, RelatedSkills: []string{"JavaScript", "Nuxt"}},
	{Name: "Angular", Category: CategoryTechnical, Aliases: []string{"Angular.js", "AngularJS"}, RelatedSkills: []string{"TypeScript", "RxJS"}},
	{Name: "Next.js", Category: CategoryTechnical, Aliases: []string{"NextJS", "Next"}, RelatedSkills: []string{"React", "Vercel"}},
	{Name: "Svelte", Category: CategoryTechnical, Aliases: []string{"SvelteKit"}, RelatedSkills: []string{"JavaScript"}},

	// Backend frameworks
	{Name: "Node.js", Category: CategoryTechnical, Aliases: []string{"NodeJS", "Node"}, RelatedSkills: []string{"JavaScript", "Express", "NestJS"}},
	{Name: "Express", Category: CategoryTechnical, Aliases: []string{"Express.js", "ExpressJS"}, RelatedSkills: []string{"Node.js"}},
	{Name: "Django", Category: CategoryTechnical, RelatedSkills: []string{"Python"}},
	{Name: "Flask", Category: CategoryTechnical, RelatedSkills: []string{"Python"}},
	{Name: "FastAPI", Category: CategoryTechnical, RelatedSkills: []string{"Python"}},
	{Name: "Spring", Category: CategoryTechnical, Aliases: []string{"Spring Boot", "Spring Framework"}, RelatedSkills: []string{"Java"}},
	{Name: "Rails", Category: CategoryTechnical, Aliases: []string{"Ruby on Rails", "RoR"}, RelatedSkills: []string{"Ruby"}},

	// Databases
	{Name: "PostgreSQL", Category: CategoryTechnical, Aliases: []string{"Postgres", "PSQL"}, RelatedSkills: []string{"SQL", "Database"}},
	{Name: "MySQL", Category: CategoryTechnical, RelatedSkills: []string{"SQL", "Database"}},
	{Name: "MongoDB", Category: CategoryTechnical, Aliases: []string{"Mongo"}, RelatedSkills: []string{"NoSQL", "Database"}},
	{Name: "Redis", Category: CategoryTechnical, RelatedSkills: []string{"Caching", "Database"}},
	{Name: "Elasticsearch", Category: CategoryTechnical, Aliases: []string{"ES", "Elastic"}, RelatedSkills: []string{"Search", "Database"}},
	{Name: "DynamoDB", Category: CategoryTechnical, RelatedSkills: []string{"AWS", "NoSQL"}},

	// Cloud and DevOps
	{Name: "AWS", Category: CategoryTechnical, Aliases: []string{"Amazon Web Services"}, RelatedSkills: []string{"Cloud", "EC2", "S3", "Lambda"}},
	{Name: "Azure", Category: CategoryTechnical, Aliases: []string{"Microsoft Azure"}, RelatedSkills: []string{"Cloud"}},
	{Name: "GCP", Category: CategoryTechnical, Aliases: []string{"Google Cloud", "Google Cloud Platform"}, RelatedSkills: []string{"Cloud"}},
	{Name: "Docker", Category: CategoryTool, RelatedSkills: []string{"Containers", "Kubernetes"}},
	{Name: "Kubernetes", Category: CategoryTool, Aliases: []string{"K8s"}, RelatedSkills: []string{"Docker", "DevOps"}},
	{Name: "Terraform", Category: CategoryTool, RelatedSkills: []string{"Infrastructure as Code", "DevOps"}},
	{Name: "CI/CD", Category: CategoryTechnical, Aliases: []string{"Continuous Integration", "Continuous Deployment"}, RelatedSkills: []string{"DevOps", "Jenkins", "GitHub Actions"}},
	{Name: "Jenkins", Category: CategoryTool, RelatedSkills: []string{"CI/CD", "DevOps"}},
	{Name: "GitHub Actions", Category: CategoryTool, RelatedSkills: []string{"CI/CD", "GitHub"}},

	// Tools
	{Name: "Git", Category: CategoryTool, Aliases: []string{"GitHub", "GitLab", "Bitbucket"}, RelatedSkills: []string{"Version Control"}},
	{Name: "JIRA", Category: CategoryTool, RelatedSkills: []string{"Agile", "Project Management"}},
	{Name: "Figma", Category: CategoryTool, RelatedSkills: []string{"Design", "UI/UX"}},

	// Soft skills
	{Name: "Leadership", Category: CategorySoft, Aliases: []string{"Team Leadership", "People Management"}, RelatedSkills: []string{"Management", "Communication"}},
	{Name: "Communication", Category: CategorySoft, Aliases: []string{"Written Communication", "Verbal Communication"}, RelatedSkills: []string{"Collaboration"}},
	{Name: "Problem Solving", Category: CategorySoft, Aliases: []string{"Problem-Solving", "Analytical Skills"}, RelatedSkills: []string{"Critical Thinking"}},
	{Name: "Teamwork", Category: CategorySoft, Aliases: []string{"Collaboration", "Team Player"}, RelatedSkills: []string{"Communication"}},
	{Name: "Agile", Category: CategorySoft, Aliases: []string{"Agile Methodology", "Agile Development"}, RelatedSkills: []string{"Scrum", "Kanban"}},
	{Name: "Scrum", Category: CategorySoft, Aliases: []string{"Scrum Master"}, RelatedSkills: []string{"Agile"}},
	{Name: "Mentoring", Category: CategorySoft, Aliases: []string{"Coaching", "Teaching"}, RelatedSkills: []string{"Leadership"}},

	// Domains
	{Name: "Machine Learning", Category: CategoryDomain, Aliases: []string{"ML", "AI", "Artificial Intelligence"}, RelatedSkills: []string{"Python", "TensorFlow", "PyTorch"}},
	{Name: "Data Science", Category: CategoryDomain, Aliases: []string{"Data Analytics"}, RelatedSkills: []string{"Python", "SQL", "Machine Learning"}},
	{Name: "DevOps", Category: CategoryDomain, Aliases: []string{"Site Reliability", "SRE"}, RelatedSkills: []string{"CI/CD", "Kubernetes", "Docker"}},
	{Name: "Security", Category: CategoryDomain, Aliases: []string{"Cybersecurity", "InfoSec"}, RelatedSkills: []string{"Authentication", "Encryption"}},
	{Name: "API Design", Category: CategoryDomain, Aliases: []string{"REST API", "API Development"}, RelatedSkills: []string{"REST", "GraphQL"}},

	// Certifications
	{Name: "AWS Certified", Category: CategoryCertification, Aliases: []string{"AWS Certification"}, RelatedSkills: []string{"AWS"}},
	{Name: "PMP", Category: CategoryCertification, Aliases: []string{"Project Management Professional"}, RelatedSkills: []string{"Project Management"}},
	{Name: "Scrum Master Certified", Category: CategoryCertification, Aliases: []string{"CSM", "PSM"}, RelatedSkills: []string{"Scrum", "Agile"}},
}
