package compiler

import "fmt"

// buildCSS emits the fixed stylesheet for a published bundle. Only the
// boxed-section max width is structure-derived; everything else is static
// boilerplate.
func buildCSS(maxWidth string) string {
	return fmt.Sprintf(`
* {
  margin: 0;
  padding: 0;
  box-sizing: border-box;
}

body {
  font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
  line-height: 1.6;
}

.page-container {
  min-height: 100vh;
}

.section {
  width: 100%%;
}

.section-full_width .section-content {
  max-width: 100%%;
  padding: 0 20px;
}

.section-boxed .section-content {
  max-width: %s;
  margin: 0 auto;
  padding: 0 20px;
}

.element {
  margin: 10px 0;
}

.element-text {
  line-height: 1.8;
}

.element-text h1, .element-text h2, .element-text h3 {
  margin: 20px 0 10px;
}

.element-text p {
  margin: 10px 0;
}

.element-image {
  max-width: 100%%;
  height: auto;
  display: block;
}

.element-button {
  display: inline-block;
  padding: 12px 24px;
  text-decoration: none;
  border-radius: 4px;
  transition: opacity 0.3s;
  cursor: pointer;
}

.element-button:hover {
  opacity: 0.8;
}

.element-form {
  max-width: 500px;
}

.form-field {
  margin-bottom: 15px;
}

.form-field label {
  display: block;
  margin-bottom: 5px;
  font-weight: 500;
}

.form-field input,
.form-field textarea {
  width: 100%%;
  padding: 10px;
  border: 1px solid #ddd;
  border-radius: 4px;
  font-size: 14px;
}

.element-form button {
  background: #000;
  color: #fff;
  padding: 12px 30px;
  border: none;
  border-radius: 4px;
  cursor: pointer;
  font-size: 16px;
}

.element-form button:hover {
  opacity: 0.9;
}

.element-social {
  display: flex;
  gap: 15px;
  flex-wrap: wrap;
}

.social-icon {
  display: inline-flex;
  align-items: center;
  justify-content: center;
  width: 40px;
  height: 40px;
  border-radius: 50%%;
  background: #000;
  color: #fff;
  text-decoration: none;
  transition: transform 0.3s;
}

.social-icon:hover {
  transform: translateY(-3px);
}

.element-embed iframe {
  width: 100%%;
  min-height: 400px;
}

.element-timer {
  font-size: 2rem;
  font-weight: bold;
  text-align: center;
}

@media (max-width: 768px) {
  .section-content {
    padding: 0 15px;
  }

  .element-timer {
    font-size: 1.5rem;
  }
}
`, maxWidth)
}

// behaviorScript is the fixed script shipped with every bundle: form
// interception, countdown timers and smooth scroll. It is independent of
// the page structure.
const behaviorScript = `
// Form submission handler
document.querySelectorAll('.element-form').forEach(form => {
  form.addEventListener('submit', async (e) => {
    e.preventDefault();

    const formData = new FormData(form);
    const data = Object.fromEntries(formData);

    const handler = form.dataset.handler;

    if (handler === 'email') {
      console.log('Form submitted:', data);
      alert('Form submitted! (Email handler would be configured in production)');
    }

    form.reset();
  });
});

// Timer/Countdown
document.querySelectorAll('.element-timer').forEach(timer => {
  const targetDate = timer.dataset.target;
  if (!targetDate) return;

  const target = new Date(targetDate).getTime();
  const display = timer.querySelector('.timer-display');

  function updateTimer() {
    const now = new Date().getTime();
    const distance = target - now;

    if (distance < 0) {
      display.textContent = 'EXPIRED';
      return;
    }

    const days = Math.floor(distance / (1000 * 60 * 60 * 24));
    const hours = Math.floor((distance % (1000 * 60 * 60 * 24)) / (1000 * 60 * 60));
    const minutes = Math.floor((distance % (1000 * 60 * 60)) / (1000 * 60));
    const seconds = Math.floor((distance % (1000 * 60)) / 1000);

    display.textContent = days + 'd ' + hours + 'h ' + minutes + 'm ' + seconds + 's';
  }

  updateTimer();
  setInterval(updateTimer, 1000);
});

// Smooth scroll for anchor links
document.querySelectorAll('a[href^="#"]').forEach(anchor => {
  anchor.addEventListener('click', function (e) {
    const href = this.getAttribute('href');
    if (href === '#') return;

    e.preventDefault();
    const target = document.querySelector(href);
    if (target) {
      target.scrollIntoView({ behavior: 'smooth' });
    }
  });
});
`
