// Package provider holds the base Provider interface and a generic registry
// that builds named provider instances from per-kind factories.
//
//	reg := provider.NewRegistry[dataprovider.DataProvider]()
//	reg.RegisterFactory("rest", rest.Factory)
//	p, err := reg.Build("jsonplaceholder", "rest", map[string]any{"url": "https://..."})
package provider
